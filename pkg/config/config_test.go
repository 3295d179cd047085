package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "FEISHU_APP_ID", "FEISHU_APP_SECRET", "FEISHU_APP_TOKEN", "FEISHU_TABLE_TOKEN",
		"FEISHU_BASE_URL", "FEISHU_TIMEOUT", "STRICT_VALIDATION", "VISIT_TIME_OFFSET_HOURS",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "https://open.feishu.cn/open-apis", cfg.FeishuBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FeishuTimeout)
	assert.Equal(t, 8*time.Hour, cfg.VisitTimeOffset)
	assert.False(t, cfg.StrictValidation)
	assert.False(t, cfg.TableConfigured())
	assert.False(t, cfg.CredentialsConfigured())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FEISHU_APP_ID", "cli_a")
	t.Setenv("FEISHU_APP_SECRET", "secret")
	t.Setenv("FEISHU_APP_TOKEN", "bascn")
	t.Setenv("FEISHU_TABLE_TOKEN", "tbl")
	t.Setenv("FEISHU_TIMEOUT", "3s")
	t.Setenv("STRICT_VALIDATION", "true")
	t.Setenv("VISIT_TIME_OFFSET_HOURS", "0")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.FeishuTimeout)
	assert.True(t, cfg.StrictValidation)
	assert.Equal(t, time.Duration(0), cfg.VisitTimeOffset)
	assert.True(t, cfg.TableConfigured())
	assert.True(t, cfg.CredentialsConfigured())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FEISHU_TIMEOUT", "soon")
	t.Setenv("STRICT_VALIDATION", "maybe")
	t.Setenv("VISIT_TIME_OFFSET_HOURS", "eight")

	cfg := LoadConfig()

	assert.Equal(t, 10*time.Second, cfg.FeishuTimeout)
	assert.False(t, cfg.StrictValidation)
	assert.Equal(t, 8*time.Hour, cfg.VisitTimeOffset)
}

func TestTableConfigured_RequiresBothTokens(t *testing.T) {
	cfg := &Config{FeishuAppToken: "bascn"}
	assert.False(t, cfg.TableConfigured())

	cfg.FeishuTableToken = "tbl"
	assert.True(t, cfg.TableConfigured())
}
