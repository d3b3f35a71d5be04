package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/filestorage"
)

// fakeRosterStore is an in-memory RosterStore for service tests
type fakeRosterStore struct {
	students map[int64]*models.StudentRecord
	nextID   int64
}

func newFakeRosterStore() *fakeRosterStore {
	return &fakeRosterStore{students: make(map[int64]*models.StudentRecord)}
}

func (f *fakeRosterStore) Create(_ context.Context, student *models.StudentRecord) (int64, error) {
	f.nextID++
	student.ID = f.nextID
	stored := *student
	f.students[student.ID] = &stored
	return student.ID, nil
}

func (f *fakeRosterStore) GetByID(_ context.Context, id int64) (*models.StudentRecord, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeRosterStore) Update(_ context.Context, student *models.StudentRecord) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	stored := *student
	f.students[student.ID] = &stored
	return nil
}

func (f *fakeRosterStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeRosterStore) List(_ context.Context) ([]*models.StudentRecord, error) {
	ids := make([]int64, 0, len(f.students))
	for id := range f.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	students := make([]*models.StudentRecord, 0, len(ids))
	for _, id := range ids {
		copied := *f.students[id]
		students = append(students, &copied)
	}
	return students, nil
}

func (f *fakeRosterStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.students)), nil
}

// makeFileHeader builds a real multipart.FileHeader the way Gin would hand it
// to a handler
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("marksheet", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["marksheet"][0]
}

func newTestRosterService(t *testing.T) (RosterService, *fakeRosterStore, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir)
	require.NoError(t, err)

	store := newFakeRosterStore()
	return NewRosterService(store, storage), store, dir
}

func TestRosterServiceAdd(t *testing.T) {
	svc, _, _ := newTestRosterService(t)

	student, err := svc.Add(context.Background(), StudentFields{
		Name:    "Alice Brown",
		Address: "12 Oak Lane",
		Phone:   "555-0101",
		Grade:   "8A",
		Marks:   87,
	})
	require.NoError(t, err)

	assert.NotZero(t, student.ID)
	assert.Equal(t, "Alice Brown", student.Name)
	assert.Equal(t, 87, student.Marks)
	// New entries never carry an attachment reference
	assert.Empty(t, student.Marksheet)
}

func TestRosterServiceUpdateWithoutAttachmentKeepsMarksheet(t *testing.T) {
	svc, store, _ := newTestRosterService(t)
	ctx := context.Background()

	student, err := svc.Add(ctx, StudentFields{Name: "Alice", Address: "a", Phone: "p", Grade: "8A", Marks: 50})
	require.NoError(t, err)

	// Simulate a previously stored attachment
	stored, err := store.GetByID(ctx, student.ID)
	require.NoError(t, err)
	stored.Marksheet = "alice_marksheet.pdf"
	require.NoError(t, store.Update(ctx, stored))

	updated, err := svc.Update(ctx, student.ID, StudentFields{
		Name:    "Alice B.",
		Address: "13 Elm St",
		Phone:   "555-0102",
		Grade:   "9B",
		Marks:   91,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, 91, updated.Marks)
	assert.Equal(t, "alice_marksheet.pdf", updated.Marksheet)
}

func TestRosterServiceUpdateStoresAttachment(t *testing.T) {
	svc, _, dir := newTestRosterService(t)
	ctx := context.Background()

	student, err := svc.Add(ctx, StudentFields{Name: "Bob", Address: "a", Phone: "p", Grade: "7C", Marks: 60})
	require.NoError(t, err)

	header := makeFileHeader(t, "bob_marksheet.pdf", []byte("pdf-bytes"))
	updated, err := svc.Update(ctx, student.ID, StudentFields{Name: "Bob", Address: "a", Phone: "p", Grade: "7C", Marks: 65}, header)
	require.NoError(t, err)

	assert.Equal(t, "bob_marksheet.pdf", updated.Marksheet)

	content, err := os.ReadFile(filepath.Join(dir, "bob_marksheet.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), content)
}

func TestRosterServiceUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestRosterService(t)

	_, err := svc.Update(context.Background(), 404, StudentFields{Name: "x"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRosterServiceDelete(t *testing.T) {
	svc, _, _ := newTestRosterService(t)
	ctx := context.Background()

	student, err := svc.Add(ctx, StudentFields{Name: "Alice", Address: "a", Phone: "p", Grade: "8A", Marks: 50})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, student.ID))

	_, err = svc.Get(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	err = svc.Delete(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRosterServiceListAndCount(t *testing.T) {
	svc, _, _ := newTestRosterService(t)
	ctx := context.Background()

	names := []string{"Alice", "Bob", "Carol"}
	for i, name := range names {
		_, err := svc.Add(ctx, StudentFields{Name: name, Address: "a", Phone: "p", Grade: "8A", Marks: i * 10})
		require.NoError(t, err)
	}

	students, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	// Creation order is preserved
	for i, st := range students {
		assert.Equal(t, names[i], st.Name)
	}

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
