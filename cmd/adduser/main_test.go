package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/storage/sqlite"
)

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_success.db")
	stdout := new(bytes.Buffer)

	args := []string{"-email", "Alice@Example.com", "-name", "Alice", "-password", "correct-horse", "-db", dbPath}
	err := run(args, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User alice@example.com created successfully")

	// The created account can log in.
	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()
	user, err := auth.NewPasswordAuthenticator(store).Authenticate(context.Background(), "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.DisplayName)
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_duplicate.db")
	args := []string{"-email", "bob@example.com", "-name", "Bob", "-password", "correct-horse", "-db", dbPath}

	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)), "first run should succeed")

	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err, "expected error on duplicate user")
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFlags(t *testing.T) {
	stdout := new(bytes.Buffer)

	err := run([]string{"-password", "correct-horse"}, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: email, name")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_interactive.db")
	stdout := new(bytes.Buffer)
	stdin := bytes.NewBufferString("interactive-secret\n")

	args := []string{"-email", "carol@example.com", "-name", "Carol", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, new(bytes.Buffer)))

	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User carol@example.com created successfully")
}

func TestRun_EmptyPassword(t *testing.T) {
	stdin := bytes.NewBufferString("\n")

	err := run([]string{"-email", "dave@example.com", "-name", "Dave"}, stdin, new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_WeakPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_weak.db")

	err := run([]string{"-email", "erin@example.com", "-name", "Erin", "-password", "short", "-db", dbPath},
		new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestRun_EnvVarOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_env.db")
	t.Setenv("DB_PATH", dbPath)

	args := []string{"-email", "frank@example.com", "-name", "Frank", "-password", "correct-horse"}
	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	assert.FileExists(t, dbPath)
}

func TestRun_InvalidDBPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	args := []string{"-email", "gina@example.com", "-name", "Gina", "-password", "correct-horse", "-db", filepath.Join(blocker, "db.sqlite")}
	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}
