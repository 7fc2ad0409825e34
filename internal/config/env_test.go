package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	tests := []struct {
		name string
		data string
		want map[string]string
	}{
		{
			name: "basic",
			data: "KEY=value\nOTHER=stuff\n",
			want: map[string]string{"KEY": "value", "OTHER": "stuff"},
		},
		{
			name: "comments and blanks",
			data: "# comment\n\nKEY=value\n  # indented comment\n\nOTHER=stuff\n",
			want: map[string]string{"KEY": "value", "OTHER": "stuff"},
		},
		{
			name: "value with equals",
			data: "URL=https://example.com?foo=bar&baz=qux\n",
			want: map[string]string{"URL": "https://example.com?foo=bar&baz=qux"},
		},
		{
			name: "trims spaces",
			data: "  KEY  =  value  \n",
			want: map[string]string{"KEY": "value"},
		},
		{
			name: "empty value",
			data: "KEY=\n",
			want: map[string]string{"KEY": ""},
		},
		{
			name: "export prefix",
			data: "export OFF_AGENT=glutenguard/1.0\n",
			want: map[string]string{"OFF_AGENT": "glutenguard/1.0"},
		},
		{
			name: "quoted values",
			data: "A=\"two words\"\nB='single # quoted'\nC=\"tab\\there\"\n",
			want: map[string]string{"A": "two words", "B": "single # quoted", "C": "tab\there"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseEnvFile([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestParseEnvFile_Errors(t *testing.T) {
	_, err := ParseEnvFile([]byte("OK=1\nBADLINE\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing '='")
	assert.Contains(t, err.Error(), "line 2")

	_, err = ParseEnvFile([]byte("=value\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty key")
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ProjectEnvFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// Register restore of any prior value, then clear it.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnvFiles_LaterFileOverrides(t *testing.T) {
	unsetForTest(t, "GG_GLOBAL_ONLY", "GG_PROJECT_ONLY", "GG_SHARED")

	global := writeEnv(t, "GG_GLOBAL_ONLY=from_global\nGG_SHARED=from_global\n")
	project := writeEnv(t, "GG_PROJECT_ONLY=from_project\nGG_SHARED=from_project\n")

	loaded := LoadEnvFiles(global, project)

	assert.Equal(t, []string{global, project}, loaded)
	assert.Equal(t, "from_global", os.Getenv("GG_GLOBAL_ONLY"))
	assert.Equal(t, "from_project", os.Getenv("GG_PROJECT_ONLY"))
	assert.Equal(t, "from_project", os.Getenv("GG_SHARED"), "project should override global")
}

func TestLoadEnvFiles_ActualEnvWins(t *testing.T) {
	t.Setenv("GG_MY_VAR", "from_actual_env")
	project := writeEnv(t, "GG_MY_VAR=from_file\n")

	LoadEnvFiles(project)

	assert.Equal(t, "from_actual_env", os.Getenv("GG_MY_VAR"), "actual env should win over file")
}

func TestLoadEnvFiles_SkipsMissingAndMalformed(t *testing.T) {
	unsetForTest(t, "GG_GOOD")
	bad := writeEnv(t, "NOT AN ASSIGNMENT\n")
	good := writeEnv(t, "GG_GOOD=yes\n")

	loaded := LoadEnvFiles("/nonexistent/path/.glutenguard.env", bad, good)

	assert.Equal(t, []string{good}, loaded)
	assert.Equal(t, "yes", os.Getenv("GG_GOOD"))
}

func TestEnvFiles(t *testing.T) {
	files := EnvFiles()
	require.Len(t, files, 2)
	assert.True(t, filepath.IsAbs(files[0]))
	assert.Contains(t, files[0], "glutenguard")
	assert.Equal(t, ProjectEnvFile, files[1])
}
