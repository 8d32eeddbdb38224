package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovan/bookshop/internal/domain/category"
	apperrors "github.com/kovan/bookshop/pkg/errors"
	"github.com/kovan/bookshop/pkg/response"
)

type fakeCategoryService struct {
	categories map[uint]*category.Category
	nextID     uint
}

func newFakeCategoryService(categories ...*category.Category) *fakeCategoryService {
	s := &fakeCategoryService{categories: make(map[uint]*category.Category), nextID: 1}
	for _, c := range categories {
		s.categories[c.ID] = c
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

func (s *fakeCategoryService) CreateCategory(_ context.Context, name, description string) (*category.Category, error) {
	c := &category.Category{ID: s.nextID, Name: name, Description: description}
	s.nextID++
	s.categories[c.ID] = c
	return c, nil
}

func (s *fakeCategoryService) GetCategoryByID(_ context.Context, id uint) (*category.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (s *fakeCategoryService) ListCategories(_ context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCategoryService) UpdateCategory(_ context.Context, id uint, name, description string) (*category.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	c.Name = name
	c.Description = description
	return c, nil
}

func (s *fakeCategoryService) DeleteCategory(_ context.Context, id uint) error {
	if _, ok := s.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func setupCategoryRouter(svc category.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")
	NewCategoryHandler(svc).RegisterRoutes(v1)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCreateCategory_Returns201(t *testing.T) {
	r := setupCategoryRouter(newFakeCategoryService())

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/categories", `{"name":"计算机","description":"编程与算法"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "计算机", data["name"])
}

func TestCreateCategory_MissingName(t *testing.T) {
	r := setupCategoryRouter(newFakeCategoryService())

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/categories", `{"description":"无名称"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
}

func TestGetCategory_NotFoundMapsTo404(t *testing.T) {
	r := setupCategoryRouter(newFakeCategoryService())

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/categories/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeCategoryNotFound, resp.Code)
}

func TestGetCategory_InvalidIDParam(t *testing.T) {
	r := setupCategoryRouter(newFakeCategoryService())

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/categories/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
}

func TestUpdateCategory_Success(t *testing.T) {
	r := setupCategoryRouter(newFakeCategoryService(&category.Category{ID: 1, Name: "旧名"}))

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/categories/1", `{"name":"新名","description":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
}

func TestDeleteCategory_Returns204(t *testing.T) {
	r := setupCategoryRouter(newFakeCategoryService(&category.Category{ID: 1, Name: "计算机"}))

	w, _ := doJSON(t, r, http.MethodDelete, "/api/v1/categories/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
