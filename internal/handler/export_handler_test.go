package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/service"
	"github.com/shiftline/rota-api/pkg/storage"
)

func newExportHandlerWithSigner(t *testing.T, secret string) (*ExportHandler, *storage.SignedURLSigner) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner(secret, time.Hour)
	svc := service.NewExportService(nil, nil, nil, store, signer, service.ExportConfig{APIPrefix: "/api/v1"}, nil, nil)
	return NewExportHandler(svc), signer
}

func TestExportHandlerDownloadRejectsBadToken(t *testing.T) {
	handler, _ := newExportHandlerWithSigner(t, "secret-a")

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/downloads/garbage", nil)
	c.Params = gin.Params{{Key: "token", Value: "garbage"}}

	handler.Download(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandlerDownloadRejectsForeignSignature(t *testing.T) {
	handler, _ := newExportHandlerWithSigner(t, "secret-a")
	foreign := storage.NewSignedURLSigner("secret-b", time.Hour)
	token, _, err := foreign.Generate("exp-1", "schedule_20260302_120000.csv")
	require.NoError(t, err)

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/downloads/"+token, nil)
	c.Params = gin.Params{{Key: "token", Value: token}}

	handler.Download(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
