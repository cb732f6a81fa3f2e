package school

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iamsahilydv/reno-test/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- 测试替身 ---

// fakeStore 内存存储替身，记录保存与删除的调用顺序
type fakeStore struct {
	saved     map[string][]byte
	events    *[]string
	saveErr   error
	deleteErr error
}

func newFakeStore(events *[]string) *fakeStore {
	return &fakeStore{saved: make(map[string][]byte), events: events}
}

func (f *fakeStore) record(event string) {
	if f.events != nil {
		*f.events = append(*f.events, event)
	}
}

func (f *fakeStore) SaveWithContext(ctx context.Context, identifier string, file io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.saved[identifier] = data
	f.record("save:" + identifier)
	return nil
}

func (f *fakeStore) GetWithContext(ctx context.Context, identifier string) (io.ReadCloser, error) {
	data, ok := f.saved[identifier]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) DeleteWithContext(ctx context.Context, identifier string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.saved, identifier)
	f.record("delete:" + identifier)
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, identifier string) (bool, error) {
	_, ok := f.saved[identifier]
	return ok, nil
}

func (f *fakeStore) List(ctx context.Context) ([]string, error) {
	identifiers := make([]string, 0, len(f.saved))
	for identifier := range f.saved {
		identifiers = append(identifiers, identifier)
	}
	return identifiers, nil
}

func (f *fakeStore) Health(ctx context.Context) error { return nil }
func (f *fakeStore) Name() string                     { return "fake" }

// stubRepo 内存记录仓库替身
type stubRepo struct {
	schools   map[uint]*models.School
	nextID    uint
	events    *[]string
	createErr error
	updateErr error
	deleteErr error
}

func newStubRepo(events *[]string) *stubRepo {
	return &stubRepo{schools: make(map[uint]*models.School), nextID: 1, events: events}
}

func (r *stubRepo) record(event string) {
	if r.events != nil {
		*r.events = append(*r.events, event)
	}
}

func (r *stubRepo) Create(ctx context.Context, school *models.School) error {
	if r.createErr != nil {
		return r.createErr
	}
	school.ID = r.nextID
	r.nextID++
	copied := *school
	r.schools[school.ID] = &copied
	r.record("create")
	return nil
}

func (r *stubRepo) List(ctx context.Context) ([]models.School, error) {
	schools := make([]models.School, 0, len(r.schools))
	for _, s := range r.schools {
		schools = append(schools, *s)
	}
	return schools, nil
}

func (r *stubRepo) GetByID(ctx context.Context, id uint) (*models.School, error) {
	s, ok := r.schools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *stubRepo) Update(ctx context.Context, school *models.School) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.schools[school.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *school
	r.schools[school.ID] = &copied
	r.record("update")
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.schools[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.schools, id)
	r.record("delete-row")
	return nil
}

// --- 测试辅助 ---

const testMaxUpload = 5 << 20

func newTestService(repo Repository, store *fakeStore) *Service {
	return NewService(repo, store, testMaxUpload)
}

func validInput() Input {
	return Input{
		Name:    "Oak Elementary",
		Address: "1 Oak St",
		City:    "Springfield",
		State:   "IL",
		Contact: "1234567890",
		EmailID: "office@oak.edu",
	}
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// makeFileHeader 通过 multipart 编解码构造真实的 FileHeader
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	require.Error(t, err)
	return KindOf(err)
}

// --- 测试 Create ---

func TestService_Create_WithoutImage(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)

	created, err := svc.Create(context.Background(), validInput(), nil)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.Image)
	assert.Empty(t, store.saved)
}

func TestService_Create_WithImage(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)

	file := makeFileHeader(t, "photo.png", pngBytes(t, 4, 3))
	created, err := svc.Create(context.Background(), validInput(), file)
	require.NoError(t, err)

	require.NotNil(t, created.Image)
	assert.Contains(t, store.saved, *created.Image)
	assert.Equal(t, 4, created.ImageWidth)
	assert.Equal(t, 3, created.ImageHeight)
}

func TestService_Create_MissingFields(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)

	in := validInput()
	in.Address = ""
	in.City = ""

	file := makeFileHeader(t, "photo.png", pngBytes(t, 2, 2))
	_, err := svc.Create(context.Background(), in, file)

	assert.Equal(t, KindValidation, kindOf(t, err))
	assert.Equal(t, "All fields except image are required. Missing: address, city", MessageOf(err))

	// 校验失败时不触碰存储与数据库
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.schools)
}

func TestService_Create_InvalidEmail(t *testing.T) {
	svc := newTestService(newStubRepo(nil), newFakeStore(nil))

	in := validInput()
	in.EmailID = "not-an-email"
	_, err := svc.Create(context.Background(), in, nil)

	assert.Equal(t, KindValidation, kindOf(t, err))
	assert.Equal(t, "Please provide a valid email address.", MessageOf(err))
}

func TestService_Create_InvalidContact(t *testing.T) {
	svc := newTestService(newStubRepo(nil), newFakeStore(nil))

	in := validInput()
	in.Contact = "123"
	_, err := svc.Create(context.Background(), in, nil)

	assert.Equal(t, KindValidation, kindOf(t, err))
	assert.Equal(t, "Please provide a valid contact number (at least 10 digits).", MessageOf(err))
}

func TestService_Create_PayloadTooLarge(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := NewService(repo, store, 16) // 极小上限

	file := makeFileHeader(t, "photo.png", pngBytes(t, 2, 2))
	_, err := svc.Create(context.Background(), validInput(), file)

	assert.Equal(t, KindPayloadTooLarge, kindOf(t, err))
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.schools)
}

func TestService_Create_NotAnImage(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)

	file := makeFileHeader(t, "notes.txt", []byte("plain text masquerading as upload"))
	_, err := svc.Create(context.Background(), validInput(), file)

	assert.Equal(t, KindUnsupportedMedia, kindOf(t, err))
	assert.Equal(t, "Only image files are allowed", MessageOf(err))
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.schools)
}

func TestService_Create_InsertFailure_CompensatesUpload(t *testing.T) {
	repo := newStubRepo(nil)
	repo.createErr = fmt.Errorf("disk full")
	store := newFakeStore(nil)
	svc := newTestService(repo, store)

	file := makeFileHeader(t, "photo.png", pngBytes(t, 2, 2))
	_, err := svc.Create(context.Background(), validInput(), file)

	assert.Equal(t, KindStore, kindOf(t, err))
	assert.Equal(t, "Database insert error", MessageOf(err))
	assert.Equal(t, "disk full", DetailsOf(err))

	// 插入失败后刚上传的资源必须被补偿删除
	assert.Empty(t, store.saved)
}

// --- 测试 Get / List ---

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(newStubRepo(nil), newFakeStore(nil))

	_, err := svc.Get(context.Background(), 999999)
	assert.Equal(t, KindNotFound, kindOf(t, err))
	assert.Equal(t, "School not found", MessageOf(err))
}

func TestService_List(t *testing.T) {
	repo := newStubRepo(nil)
	svc := newTestService(repo, newFakeStore(nil))
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	schools, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, schools, 1)
}

// --- 测试 Update ---

func TestService_Update_NotFound(t *testing.T) {
	store := newFakeStore(nil)
	svc := newTestService(newStubRepo(nil), store)

	file := makeFileHeader(t, "photo.png", pngBytes(t, 2, 2))
	_, err := svc.Update(context.Background(), 999999, validInput(), file)

	assert.Equal(t, KindNotFound, kindOf(t, err))
	// 记录不存在时不得上传任何资源
	assert.Empty(t, store.saved)
}

func TestService_Update_WithoutFile_KeepsImage(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)
	ctx := context.Background()

	file := makeFileHeader(t, "photo.png", pngBytes(t, 2, 2))
	created, err := svc.Create(ctx, validInput(), file)
	require.NoError(t, err)
	original := *created.Image

	in := validInput()
	in.Name = "Oak Elementary Renamed"
	updated, err := svc.Update(ctx, created.ID, in, nil)
	require.NoError(t, err)

	assert.Equal(t, "Oak Elementary Renamed", updated.Name)
	require.NotNil(t, updated.Image)
	assert.Equal(t, original, *updated.Image)
	assert.Contains(t, store.saved, original)
}

func TestService_Update_ReplacesImage_DeletesOldAfterRowUpdate(t *testing.T) {
	var events []string
	repo := newStubRepo(&events)
	store := newFakeStore(&events)
	svc := newTestService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), makeFileHeader(t, "old.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)
	oldImage := *created.Image

	events = events[:0]
	updated, err := svc.Update(ctx, created.ID, validInput(), makeFileHeader(t, "new.png", pngBytes(t, 8, 6)))
	require.NoError(t, err)

	require.NotNil(t, updated.Image)
	newImage := *updated.Image
	assert.NotEqual(t, oldImage, newImage)
	assert.Contains(t, store.saved, newImage)
	assert.NotContains(t, store.saved, oldImage)
	assert.Equal(t, 8, updated.ImageWidth)

	// 旧资源必须在新资源落盘且行更新成功之后才被删除
	assert.Equal(t, []string{"save:" + newImage, "update", "delete:" + oldImage}, events)
}

func TestService_Update_RowFailure_CompensatesNewKeepsOld(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), makeFileHeader(t, "old.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)
	oldImage := *created.Image

	repo.updateErr = fmt.Errorf("connection reset")
	_, err = svc.Update(ctx, created.ID, validInput(), makeFileHeader(t, "new.png", pngBytes(t, 2, 2)))

	assert.Equal(t, KindStore, kindOf(t, err))
	assert.Equal(t, "Database update error", MessageOf(err))

	// 行仍指向旧资源：新资源被补偿删除，旧资源保持可用
	assert.Contains(t, store.saved, oldImage)
	assert.Len(t, store.saved, 1)
}

func TestService_Update_ValidationFailure_NoUpload(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	in := validInput()
	in.EmailID = "bad"
	_, err = svc.Update(ctx, created.ID, in, makeFileHeader(t, "new.png", pngBytes(t, 2, 2)))

	assert.Equal(t, KindValidation, kindOf(t, err))
	assert.Empty(t, store.saved)
}

// --- 测试 Delete ---

func TestService_Delete_RemovesRowThenAsset(t *testing.T) {
	var events []string
	repo := newStubRepo(&events)
	store := newFakeStore(&events)
	svc := newTestService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), makeFileHeader(t, "photo.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)
	identifier := *created.Image

	events = events[:0]
	require.NoError(t, svc.Delete(ctx, created.ID))

	assert.Empty(t, repo.schools)
	assert.Empty(t, store.saved)
	// 行先删，资源后删
	assert.Equal(t, []string{"delete-row", "delete:" + identifier}, events)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := newTestService(newStubRepo(nil), newFakeStore(nil))

	err := svc.Delete(context.Background(), 999999)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestService_Delete_RowFailure_KeepsAsset(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), makeFileHeader(t, "photo.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)

	repo.deleteErr = fmt.Errorf("deadlock")
	err = svc.Delete(ctx, created.ID)

	assert.Equal(t, KindStore, kindOf(t, err))
	// 行删除失败时资源必须原样保留
	assert.Contains(t, store.saved, *created.Image)
}

func TestService_Delete_AssetFailure_StillSucceeds(t *testing.T) {
	repo := newStubRepo(nil)
	store := newFakeStore(nil)
	svc := newTestService(repo, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), makeFileHeader(t, "photo.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)

	// 资源删除失败只记录日志，不影响删除结果
	store.deleteErr = fmt.Errorf("storage offline")
	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.schools)
}
