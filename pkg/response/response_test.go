package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{
			name:     "validation error with fields",
			err:      &content.ValidationError{Missing: []string{"Component"}},
			wantCode: http.StatusBadRequest,
			wantType: TypeValidation,
		},
		{
			name:     "wrapped not found",
			err:      content.NotFound(content.KindLocation, content.Filter{"name": "Miami"}),
			wantCode: http.StatusNotFound,
			wantType: TypeNotFound,
		},
		{
			name:     "storage error",
			err:      content.WrapStorage(content.KindText, "list", errors.New("dial tcp: refused")),
			wantCode: http.StatusInternalServerError,
			wantType: TypeStorage,
		},
		{
			name:     "unknown error",
			err:      fmt.Errorf("boom"),
			wantCode: http.StatusInternalServerError,
			wantType: TypeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantType, body.Type)
		})
	}
}

func TestStorageErrorHidesCause(t *testing.T) {
	_, body := Classify(content.WrapStorage(content.KindPicture, "create", errors.New("password authentication failed")))
	assert.NotContains(t, body.Message, "password")
}

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, &content.ValidationError{Missing: []string{"ID", "ImageURL"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, TypeValidation, env.Error.Type)
	assert.Equal(t, []string{"ID", "ImageURL"}, env.Error.Fields)
	assert.Contains(t, env.Error.Message, "ImageURL")
}
