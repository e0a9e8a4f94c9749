package services

import (
	"testing"

	"github.com/projecthub/project-tracking-api/internal/database"
	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UtilizationServiceTestSuite defines the test suite for UtilizationService
type UtilizationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UtilizationService
}

// SetupTest runs before each test
func (suite *UtilizationServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Project{},
		&models.Resource{},
		&models.Milestone{},
		&models.ProjectStatusUpdate{},
		&models.UtilizationSnapshot{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.service = NewUtilizationService(
		repository.NewSnapshotRepository(suite.db),
		repository.NewResourceRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *UtilizationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UtilizationServiceTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{
		Name:      name,
		Status:    models.ProjectStatusActive,
		StartDate: testDate("2025-01-01"),
		RagStatus: models.RagStatusNA,
	}
	suite.db.Create(project)
	return project
}

func (suite *UtilizationServiceTestSuite) createTestResource(projectID uint64, name string, allocation float64, start string, end *string) *models.Resource {
	resource := &models.Resource{
		ProjectID:            projectID,
		Name:                 name,
		Type:                 "Engineer",
		AllocationPercentage: allocation,
		StartDate:            testDate(start),
	}
	if end != nil {
		e := testDate(*end)
		resource.EndDate = &e
	}
	suite.db.Create(resource)
	return resource
}

// TestCapture_ComputesWeeklyUtilization tests the core measurement
func (suite *UtilizationServiceTestSuite) TestCapture_ComputesWeeklyUtilization() {
	project := suite.createTestProject("Alpha")

	// Two distinct names overlapping the week of 2025-06-09
	suite.createTestResource(project.ID, "Ann", 80, "2025-06-01", nil)
	suite.createTestResource(project.ID, "Bob", 40, "2025-06-10", testDateStr("2025-06-12"))

	snapshot, err := suite.service.Capture(testDate("2025-06-12"))
	suite.Require().NoError(err)

	assert.Equal(suite.T(), testDate("2025-06-09"), snapshot.WeekStartDate)
	assert.Equal(suite.T(), testDate("2025-06-15"), snapshot.WeekEndDate)
	assert.Equal(suite.T(), 2, snapshot.UniqueResourceCount)
	assert.Equal(suite.T(), 200.0, snapshot.TotalCapacity)
	assert.Equal(suite.T(), 120.0, snapshot.TotalAllocated)
	assert.Equal(suite.T(), 60.0, snapshot.UtilizationPercentage)
}

// TestCapture_DuplicateNamesCountOnce tests capacity uses unique names while
// allocation sums every row
func (suite *UtilizationServiceTestSuite) TestCapture_DuplicateNamesCountOnce() {
	p1 := suite.createTestProject("Alpha")
	p2 := suite.createTestProject("Beta")

	suite.createTestResource(p1.ID, "Ann", 60, "2025-06-01", nil)
	suite.createTestResource(p2.ID, "Ann", 60, "2025-06-01", nil)

	snapshot, err := suite.service.Capture(testDate("2025-06-12"))
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 1, snapshot.UniqueResourceCount)
	assert.Equal(suite.T(), 100.0, snapshot.TotalCapacity)
	assert.Equal(suite.T(), 120.0, snapshot.TotalAllocated)
	assert.Equal(suite.T(), 120.0, snapshot.UtilizationPercentage)
}

// TestCapture_NoResourcesZeroUtilization tests the zero-capacity guard
func (suite *UtilizationServiceTestSuite) TestCapture_NoResourcesZeroUtilization() {
	snapshot, err := suite.service.Capture(testDate("2025-06-12"))
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 0, snapshot.UniqueResourceCount)
	assert.Equal(suite.T(), 0.0, snapshot.TotalCapacity)
	assert.Equal(suite.T(), 0.0, snapshot.UtilizationPercentage)
}

// TestCapture_NonOverlappingExcluded tests the week window selection
func (suite *UtilizationServiceTestSuite) TestCapture_NonOverlappingExcluded() {
	project := suite.createTestProject("Alpha")

	// Ends the Sunday before the measured week
	suite.createTestResource(project.ID, "Ann", 80, "2025-05-01", testDateStr("2025-06-08"))
	// Starts the Monday after the measured week
	suite.createTestResource(project.ID, "Bob", 80, "2025-06-16", nil)
	// Touches only the Sunday of the measured week
	suite.createTestResource(project.ID, "Cay", 30, "2025-06-15", nil)

	snapshot, err := suite.service.Capture(testDate("2025-06-12"))
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 1, snapshot.UniqueResourceCount)
	assert.Equal(suite.T(), 30.0, snapshot.TotalAllocated)
}

// TestCapture_SameWeekOverwrites tests the upsert keyed by week start
func (suite *UtilizationServiceTestSuite) TestCapture_SameWeekOverwrites() {
	project := suite.createTestProject("Alpha")
	suite.createTestResource(project.ID, "Ann", 50, "2025-06-01", nil)

	first, err := suite.service.Capture(testDate("2025-06-10"))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 50.0, first.UtilizationPercentage)

	suite.createTestResource(project.ID, "Bob", 100, "2025-06-01", nil)

	// Different day, same week: the row is replaced, not duplicated
	second, err := suite.service.Capture(testDate("2025-06-13"))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 75.0, second.UtilizationPercentage)

	var count int64
	suite.db.Model(&models.UtilizationSnapshot{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestSeries_LabelsAndSummary tests chart output and aggregate stats
func (suite *UtilizationServiceTestSuite) TestSeries_LabelsAndSummary() {
	project := suite.createTestProject("Alpha")
	suite.createTestResource(project.ID, "Ann", 50, "2025-06-01", testDateStr("2025-06-13"))
	suite.createTestResource(project.ID, "Bob", 100, "2025-06-16", nil)

	_, err := suite.service.Capture(testDate("2025-06-12"))
	suite.Require().NoError(err)
	_, err = suite.service.Capture(testDate("2025-06-18"))
	suite.Require().NoError(err)

	series, err := suite.service.Series(testDate("2025-06-18"))
	suite.Require().NoError(err)
	suite.Require().Len(series.Points, 2)

	first := series.Points[0]
	assert.Equal(suite.T(), "09/06/2025", first.Week)
	assert.Equal(suite.T(), "Week 23", first.WeekLabel)
	assert.Equal(suite.T(), 50.0, first.Utilization)

	second := series.Points[1]
	assert.Equal(suite.T(), "16/06/2025", second.Week)
	assert.Equal(suite.T(), 100.0, second.Utilization)

	assert.Equal(suite.T(), 75.0, series.Summary.AverageUtilization)
	assert.Equal(suite.T(), 2, series.Summary.WeeksTracked)
	suite.Require().NotNil(series.Summary.CurrentWeekUtilization)
	assert.Equal(suite.T(), 100.0, *series.Summary.CurrentWeekUtilization)
}

// TestSeries_NoCurrentWeekSnapshot tests that the current-week figure is nil
// when no snapshot covers the week containing now
func (suite *UtilizationServiceTestSuite) TestSeries_NoCurrentWeekSnapshot() {
	project := suite.createTestProject("Alpha")
	suite.createTestResource(project.ID, "Ann", 50, "2025-06-01", nil)

	_, err := suite.service.Capture(testDate("2025-06-12"))
	suite.Require().NoError(err)

	series, err := suite.service.Series(testDate("2025-07-01"))
	suite.Require().NoError(err)

	assert.Len(suite.T(), series.Points, 1)
	assert.Nil(suite.T(), series.Summary.CurrentWeekUtilization)
}

// TestSeries_Empty tests the zero-history response
func (suite *UtilizationServiceTestSuite) TestSeries_Empty() {
	series, err := suite.service.Series(testDate("2025-06-18"))
	suite.Require().NoError(err)

	assert.Empty(suite.T(), series.Points)
	assert.Equal(suite.T(), 0.0, series.Summary.AverageUtilization)
	assert.Equal(suite.T(), 0, series.Summary.WeeksTracked)
	assert.Nil(suite.T(), series.Summary.CurrentWeekUtilization)
}

// TestSuite runs the test suite
func TestUtilizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UtilizationServiceTestSuite))
}
