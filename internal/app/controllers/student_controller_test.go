package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/app/services"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memRosterService is an in-memory services.RosterService for handler tests
type memRosterService struct {
	students map[int64]*models.StudentRecord
	nextID   int64
}

func newMemRosterService() *memRosterService {
	return &memRosterService{students: make(map[int64]*models.StudentRecord)}
}

func (m *memRosterService) Add(_ context.Context, fields services.StudentFields) (*models.StudentRecord, error) {
	m.nextID++
	student := &models.StudentRecord{
		ID:      m.nextID,
		Name:    fields.Name,
		Address: fields.Address,
		Phone:   fields.Phone,
		Grade:   fields.Grade,
		Marks:   fields.Marks,
	}
	m.students[student.ID] = student
	return student, nil
}

func (m *memRosterService) Update(_ context.Context, id int64, fields services.StudentFields, attachment *multipart.FileHeader) (*models.StudentRecord, error) {
	student, ok := m.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	student.Name = fields.Name
	student.Address = fields.Address
	student.Phone = fields.Phone
	student.Grade = fields.Grade
	student.Marks = fields.Marks
	if attachment != nil {
		student.Marksheet = attachment.Filename
	}
	return student, nil
}

func (m *memRosterService) Delete(_ context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(m.students, id)
	return nil
}

func (m *memRosterService) Get(_ context.Context, id int64) (*models.StudentRecord, error) {
	student, ok := m.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (m *memRosterService) List(_ context.Context) ([]*models.StudentRecord, error) {
	ids := make([]int64, 0, len(m.students))
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	students := make([]*models.StudentRecord, 0, len(ids))
	for _, id := range ids {
		students = append(students, m.students[id])
	}
	return students, nil
}

func (m *memRosterService) Count(_ context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

func newStudentRouter(svc services.RosterService) *gin.Engine {
	router := gin.New()
	controller := NewStudentController(svc)
	router.GET("/students", controller.ListStudents)
	router.POST("/students", controller.AddStudent)
	router.GET("/students/:id", controller.GetStudent)
	router.PUT("/students/:id", controller.UpdateStudent)
	router.DELETE("/students/:id", controller.DeleteStudent)
	router.GET("/dashboard", controller.Dashboard)
	return router
}

func TestStudentControllerAddAndGet(t *testing.T) {
	router := newStudentRouter(newMemRosterService())

	body, err := json.Marshal(gin.H{
		"name": "Alice Brown", "address": "12 Oak Lane", "phone": "555-0101", "grade": "8A", "marks": 87,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice Brown")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice Brown")
}

func TestStudentControllerAddRejectsMissingFields(t *testing.T) {
	router := newStudentRouter(newMemRosterService())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader([]byte(`{"name":"Alice"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentControllerGetUnknownID(t *testing.T) {
	router := newStudentRouter(newMemRosterService())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentControllerUpdateViaForm(t *testing.T) {
	svc := newMemRosterService()
	router := newStudentRouter(svc)

	_, err := svc.Add(context.Background(), services.StudentFields{Name: "Alice", Address: "a", Phone: "p", Grade: "8A", Marks: 50})
	require.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Alice B."))
	require.NoError(t, writer.WriteField("address", "13 Elm St"))
	require.NoError(t, writer.WriteField("phone", "555-0102"))
	require.NoError(t, writer.WriteField("grade", "9B"))
	require.NoError(t, writer.WriteField("marks", "91"))
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/students/1", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice B.")
	assert.Contains(t, rec.Body.String(), "9B")
}

func TestStudentControllerDelete(t *testing.T) {
	svc := newMemRosterService()
	router := newStudentRouter(svc)

	_, err := svc.Add(context.Background(), services.StudentFields{Name: "Alice", Address: "a", Phone: "p", Grade: "8A", Marks: 50})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/students/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/students/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentControllerDashboard(t *testing.T) {
	svc := newMemRosterService()
	router := newStudentRouter(svc)

	for _, name := range []string{"Alice", "Bob"} {
		_, err := svc.Add(context.Background(), services.StudentFields{Name: name, Address: "a", Phone: "p", Grade: "8A", Marks: 1})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalStudents":2`)
}
