package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	requireDB(t)

	email, password, fullName := registerTestUser(t)

	resp := doJSON(t, "POST", "/api/user/register", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterWeakPassword(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/user/register", map[string]string{
		"fullName": "weak password user",
		"email":    "weakpass@example.com",
		"password": "abcdefgh",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterMissingFields(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/user/register", map[string]string{
		"email": "incomplete@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginSetsCookiesAndStripsSecrets(t *testing.T) {
	requireDB(t)

	email, password, _ := registerTestUser(t)

	resp := doJSON(t, "POST", "/api/user/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, cookieByName(resp, "accessToken"))
	assert.NotNil(t, cookieByName(resp, "refreshToken"))

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, email, data["email"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "refreshToken")
}

func TestLoginWrongPassword(t *testing.T) {
	requireDB(t)

	email, _, _ := registerTestUser(t)

	resp := doJSON(t, "POST", "/api/user/login", map[string]string{
		"email":    email,
		"password": "Wrongpw1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	resp.Body.Close()
}

func TestLoginUnknownUser(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/user/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "Abcdef1!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetCurrentUser(t *testing.T) {
	requireDB(t)

	email, password, fullName := registerTestUser(t)
	access, _ := loginTestUser(t, email, password)

	resp := doJSON(t, "GET", "/api/user/getUser", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, email, data["email"])
	assert.Equal(t, fullName, data["fullName"])
}

func TestGetCurrentUserWithoutCookie(t *testing.T) {
	resp := doJSON(t, "GET", "/api/user/getUser", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRefreshTokenRotation(t *testing.T) {
	requireDB(t)

	email, password, _ := registerTestUser(t)
	_, refresh := loginTestUser(t, email, password)

	// First presentation rotates the stored token.
	resp := doJSON(t, "GET", "/api/user/refreshToken", nil, refresh)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, cookieByName(resp, "accessToken"))
	assert.NotNil(t, cookieByName(resp, "refreshToken"))
	resp.Body.Close()

	// The superseded token is rejected even though its signature is valid.
	resp = doJSON(t, "GET", "/api/user/refreshToken", nil, refresh)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRefreshTokenMissing(t *testing.T) {
	resp := doJSON(t, "GET", "/api/user/refreshToken", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRefreshTokenInvalid(t *testing.T) {
	resp := doJSON(t, "GET", "/api/user/refreshToken", nil,
		&http.Cookie{Name: "refreshToken", Value: "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	requireDB(t)

	email, password, _ := registerTestUser(t)
	access, refresh := loginTestUser(t, email, password)

	resp := doJSON(t, "POST", "/api/user/logout", nil, access)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The cleared stored token no longer matches the presented one.
	resp = doJSON(t, "GET", "/api/user/refreshToken", nil, refresh)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestChangePassword(t *testing.T) {
	requireDB(t)

	email, password, _ := registerTestUser(t)
	access, _ := loginTestUser(t, email, password)

	resp := doJSON(t, "PUT", "/api/user/changePassword", map[string]string{
		"oldPassword":        password,
		"newPassword":        "Newpass2$",
		"confirmNewPassword": "Something3!",
	}, access)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "PUT", "/api/user/changePassword", map[string]string{
		"oldPassword":        "NotTheOld1!",
		"newPassword":        "Newpass2$",
		"confirmNewPassword": "Newpass2$",
	}, access)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "PUT", "/api/user/changePassword", map[string]string{
		"oldPassword":        password,
		"newPassword":        "Newpass2$",
		"confirmNewPassword": "Newpass2$",
	}, access)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Old password no longer works, the new one does.
	resp = doJSON(t, "POST", "/api/user/login", map[string]string{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	loginTestUser(t, email, "Newpass2$")
}

func TestUpdateDetails(t *testing.T) {
	requireDB(t)

	email, password, _ := registerTestUser(t)
	access, _ := loginTestUser(t, email, password)

	resp := doJSON(t, "PUT", "/api/user/updateDetails", map[string]string{
		"newName": "  New Display Name  ",
	}, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "new display name", data["fullName"])
}

func TestUpdateDetailsEmptyName(t *testing.T) {
	requireDB(t)

	email, password, _ := registerTestUser(t)
	access, _ := loginTestUser(t, email, password)

	resp := doJSON(t, "PUT", "/api/user/updateDetails", map[string]string{
		"newName": "   ",
	}, access)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
