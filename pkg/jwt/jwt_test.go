package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/contracts-api/pkg/jwt"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testSession = "7f1d3c1e-0000-4000-8000-000000000001"
	testIssuer  = "contracts-api-test"
)

func TestGenerateYParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession, 42, testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sid, uid, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSession, sid)
	assert.Equal(t, int64(42), uid)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession, 1, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession, 1, testIssuer, time.Hour)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecretNiSesion(t *testing.T) {
	_, err := pkgjwt.Generate("", testSession, 1, testIssuer, time.Hour)
	assert.Error(t, err)
	_, err = pkgjwt.Generate(testSecret, "", 1, testIssuer, time.Hour)
	assert.Error(t, err)
}
