package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/database"
	"github.com/projecthub/project-tracking-api/internal/models"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ResourceHandlerTestSuite defines the test suite for ResourceHandler
type ResourceHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ResourceHandler
}

// SetupTest runs before each test
func (suite *ResourceHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.Project{},
		&models.Resource{},
		&models.Milestone{},
		&models.ProjectStatusUpdate{},
		&models.UtilizationSnapshot{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	resourceRepo := repository.NewResourceRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	allocationService := services.NewAllocationService(resourceRepo)
	resourceService := services.NewResourceService(resourceRepo, projectRepo, allocationService)
	suite.handler = NewResourceHandler(resourceService, allocationService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ResourceHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ResourceHandlerTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{
		Name:      name,
		Status:    models.ProjectStatusActive,
		StartDate: testDate("2025-01-01"),
		RagStatus: models.RagStatusNA,
	}
	suite.db.Create(project)
	return project
}

func (suite *ResourceHandlerTestSuite) createTestResource(projectID uint64, name string, allocation float64) *models.Resource {
	resource := &models.Resource{
		ProjectID:            projectID,
		Name:                 name,
		Type:                 "Engineer",
		AllocationPercentage: allocation,
		StartDate:            testDate("2025-01-01"),
	}
	suite.db.Create(resource)
	return resource
}

func testDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Helper function to create a test context
func (suite *ResourceHandlerTestSuite) createContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func (suite *ResourceHandlerTestSuite) setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

// TestCreateResource_Success tests resource creation without a warning
func (suite *ResourceHandlerTestSuite) TestCreateResource_Success() {
	project := suite.createTestProject("Alpha")

	requestBody := map[string]interface{}{
		"project_id":            project.ID,
		"name":                  "Ann",
		"type":                  "Engineer",
		"allocation_percentage": 50,
		"start_date":            "2025-01-01",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("POST", "/api/resources", body)

	suite.handler.CreateResource(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "resource")
	assert.NotContains(suite.T(), response, "warning")

	resource := response["resource"].(map[string]interface{})
	assert.Equal(suite.T(), "Ann", resource["name"])
	assert.Equal(suite.T(), 50.0, resource["allocation_percentage"])
}

// TestCreateResource_OverAllocationWarning tests that an over-allocating
// create still succeeds and carries a warning
func (suite *ResourceHandlerTestSuite) TestCreateResource_OverAllocationWarning() {
	project := suite.createTestProject("Alpha")
	suite.createTestResource(project.ID, "Ann", 80)

	requestBody := map[string]interface{}{
		"project_id":            project.ID,
		"name":                  "Ann",
		"type":                  "Engineer",
		"allocation_percentage": 40,
		"start_date":            "2025-01-01",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("POST", "/api/resources", body)

	suite.handler.CreateResource(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Contains(response, "warning")

	warning := response["warning"].(map[string]interface{})
	assert.Equal(suite.T(), "Ann", warning["name"])
	assert.Equal(suite.T(), 80.0, warning["current_allocation"])
	assert.Equal(suite.T(), 120.0, warning["projected_allocation"])

	// The row was written despite the warning
	var count int64
	suite.db.Model(&models.Resource{}).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

// TestCreateResource_ZeroAllocationAccepted tests that 0 is a valid percentage
func (suite *ResourceHandlerTestSuite) TestCreateResource_ZeroAllocationAccepted() {
	project := suite.createTestProject("Alpha")

	requestBody := map[string]interface{}{
		"project_id":            project.ID,
		"name":                  "Ann",
		"type":                  "Engineer",
		"allocation_percentage": 0,
		"start_date":            "2025-01-01",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("POST", "/api/resources", body)

	suite.handler.CreateResource(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

// TestCreateResource_MissingFields tests the binding validation
func (suite *ResourceHandlerTestSuite) TestCreateResource_MissingFields() {
	requestBody := map[string]interface{}{
		"name": "Ann",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("POST", "/api/resources", body)

	suite.handler.CreateResource(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateResource_InvalidDate tests date parsing failure
func (suite *ResourceHandlerTestSuite) TestCreateResource_InvalidDate() {
	project := suite.createTestProject("Alpha")

	requestBody := map[string]interface{}{
		"project_id":            project.ID,
		"name":                  "Ann",
		"type":                  "Engineer",
		"allocation_percentage": 50,
		"start_date":            "01/01/2025",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("POST", "/api/resources", body)

	suite.handler.CreateResource(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateResource_ProjectNotFound tests creating against a missing project
func (suite *ResourceHandlerTestSuite) TestCreateResource_ProjectNotFound() {
	requestBody := map[string]interface{}{
		"project_id":            9999,
		"name":                  "Ann",
		"type":                  "Engineer",
		"allocation_percentage": 50,
		"start_date":            "2025-01-01",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("POST", "/api/resources", body)

	suite.handler.CreateResource(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateResource_ClearEndDate tests nulling the end date via the flag
func (suite *ResourceHandlerTestSuite) TestUpdateResource_ClearEndDate() {
	project := suite.createTestProject("Alpha")
	resource := suite.createTestResource(project.ID, "Ann", 50)
	end := testDate("2025-06-30")
	suite.db.Model(resource).Update("end_date", end)

	requestBody := map[string]interface{}{
		"clear_end_date": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createContext("PATCH", "/api/resources/1", body)
	suite.setIDParam(c, resource.ID)

	suite.handler.UpdateResource(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response["end_date"])
}

// TestDeleteResource_Success tests resource deletion
func (suite *ResourceHandlerTestSuite) TestDeleteResource_Success() {
	project := suite.createTestProject("Alpha")
	resource := suite.createTestResource(project.ID, "Ann", 50)

	c, w := suite.createContext("DELETE", "/api/resources/1", nil)
	suite.setIDParam(c, resource.ID)

	suite.handler.DeleteResource(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Resource{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestDeleteResource_NotFound tests deleting a missing resource
func (suite *ResourceHandlerTestSuite) TestDeleteResource_NotFound() {
	c, w := suite.createContext("DELETE", "/api/resources/9999", nil)
	suite.setIDParam(c, 9999)

	suite.handler.DeleteResource(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetAllocationSummaries tests the allocation rollup endpoint
func (suite *ResourceHandlerTestSuite) TestGetAllocationSummaries() {
	p1 := suite.createTestProject("Alpha")
	p2 := suite.createTestProject("Beta")
	suite.createTestResource(p1.ID, "Ann", 60)
	suite.createTestResource(p2.ID, "Ann", 50)

	c, w := suite.createContext("GET", "/api/resources/allocation", nil)
	c.Request.URL.RawQuery = "as_of=2025-02-15"

	suite.handler.GetAllocationSummaries(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2025-02-15", response["as_of"])

	allocations := response["allocations"].([]interface{})
	suite.Require().Len(allocations, 1)

	ann := allocations[0].(map[string]interface{})
	assert.Equal(suite.T(), "Ann", ann["name"])
	assert.Equal(suite.T(), 110.0, ann["current_allocation"])
	assert.Equal(suite.T(), true, ann["is_over_allocated"])
}

// TestListResources_FilterByProject tests the project_id query filter
func (suite *ResourceHandlerTestSuite) TestListResources_FilterByProject() {
	p1 := suite.createTestProject("Alpha")
	p2 := suite.createTestProject("Beta")
	suite.createTestResource(p1.ID, "Ann", 50)
	suite.createTestResource(p2.ID, "Bob", 50)

	c, w := suite.createContext("GET", "/api/resources", nil)
	c.Request.URL.RawQuery = "project_id=" + strconv.FormatUint(p1.ID, 10)

	suite.handler.ListResources(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "pagination")

	resources := response["resources"].([]interface{})
	suite.Require().Len(resources, 1)
	first := resources[0].(map[string]interface{})
	assert.Equal(suite.T(), "Ann", first["name"])
}

// TestSuite runs the test suite
func TestResourceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}
