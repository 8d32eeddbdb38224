package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kovan/bookshop/pkg/errors"
)

func record(write func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	write(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestCreated(t *testing.T) {
	w := record(func(c *gin.Context) {
		Created(c, gin.H{"id": 1})
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNoContent(t *testing.T) {
	w := record(NoContent)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

// 业务错误码区间 → HTTP状态码映射
func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"资源不存在映射404", apperrors.ErrBookNotFound, http.StatusNotFound, apperrors.ErrCodeBookNotFound},
		{"业务冲突映射409", apperrors.ErrInsufficientStock, http.StatusConflict, apperrors.ErrCodeInsufficientStock},
		{"参数错误映射400", apperrors.ErrInvalidParams, http.StatusBadRequest, apperrors.ErrCodeInvalidParams},
		{"系统错误映射500", apperrors.ErrInternal, http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := record(func(c *gin.Context) {
				Error(c, tt.err)
			})
			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decode(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestError_UnknownErrorHidesDetail(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, assert.AnError)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decode(t, w)
	assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
	// 内部错误细节不外泄
	assert.NotContains(t, resp.Message, assert.AnError.Error())
}

func TestErrorWithCode(t *testing.T) {
	w := record(func(c *gin.Context) {
		ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误")
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
