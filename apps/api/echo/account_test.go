package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAccountAPI_login(t *testing.T) {
	srv := setup(t)

	tests := []httpTest{
		{
			name: "ok", method: http.MethodPost, path: "/v1/auth/login",
			body:     []byte(`{"email": "john.smith@example.com", "pin": "123456"}`),
			wantCode: http.StatusOK,
		},
		{
			name: "email is case-insensitive", method: http.MethodPost, path: "/v1/auth/login",
			body:     []byte(`{"email": "John.Smith@Example.com", "pin": "123456"}`),
			wantCode: http.StatusOK,
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/auth/login",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "pin": "this field is required"}),
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/v1/auth/login",
			body:     []byte(`{"email": "nobody@example.com", "pin": "123456"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "wrong pin", method: http.MethodPost, path: "/v1/auth/login",
			body:     []byte(`{"email": "john.smith@example.com", "pin": "000000"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			srv.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var res LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshalling LoginResponse: %v", err)
				}
				if res.Token == "" {
					t.Error("empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAccountAPI_me(t *testing.T) {
	srv := setup(t)
	prt := srv.parent(t)

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/auth/me",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "ok", method: http.MethodGet, path: "/v1/auth/me",
			token:    getToken(t, prt),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, prt),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAccountAPI_tokenRefresh(t *testing.T) {
	srv := setup(t)
	prt := srv.parent(t)

	req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", getToken(t, prt))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var res LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshalling LoginResponse: %v", err)
	}
	if res.Token == "" {
		t.Error("empty token")
	}
}
