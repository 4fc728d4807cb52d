package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleAuthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockGoogleLoginer(ctrl)

	tests := []struct {
		name         string
		body         string
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name: "success",
			body: `{"credential":"id-token"}`,
			mockSetup: func() {
				mockSvc.EXPECT().LoginWithGoogle(gomock.Any(), "id-token").Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing credential",
			body:         `{}`,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "credential is required",
		},
		{
			name: "invalid token",
			body: `{"credential":"forged"}`,
			mockSetup: func() {
				mockSvc.EXPECT().LoginWithGoogle(gomock.Any(), "forged").Return("", models.ErrInvalidGoogleToken)
			},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Invalid Google credential",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			NewGoogleAuthHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedErr != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedErr, resp.Error)
				return
			}
			var resp TokenResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, TokenResponse{AccessToken: "JWT_TOKEN", TokenType: "bearer"}, resp)
		})
	}
}
