package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/questme/backend/internal/config"
)

type companionView struct {
	ID    string `json:"id"`
	Voice struct {
		SpeechCode string `json:"speechCode"`
	} `json:"voice"`
}

func listCompanions(t *testing.T, speechCode string) map[string]string {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("QUESTME_SPEECH_CODE", speechCode)

	cfg, err := config.Load()
	require.NoError(t, err)

	router, err := newRouter(context.Background(), cfg)
	require.NoError(t, err)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/companions", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var views []companionView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &views))

	codes := make(map[string]string, len(views))
	for _, v := range views {
		codes[v.ID] = v.Voice.SpeechCode
	}
	return codes
}

func TestCompanionsUseConfiguredSpeechCode(t *testing.T) {
	codes := listCompanions(t, "ko-KR")

	assert.Equal(t, "ko-KR", codes["hikari"])
	assert.Equal(t, "ko-KR", codes["shizuku"])
	assert.Equal(t, "ko-KR", codes["sensei"])
	assert.Equal(t, "en-US", codes["nova"], "fixed voices keep their own code")
}

func TestCompanionsDefaultSpeechCode(t *testing.T) {
	codes := listCompanions(t, "ja-JP")

	assert.Equal(t, "ja-JP", codes["hikari"])
	assert.Equal(t, "en-US", codes["nova"])
}
