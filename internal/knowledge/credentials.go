package knowledge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
)

const credentialsFileName = "admin_credentials.json"

// adminFile is the on-disk shape of the credentials file.
type adminFile struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Credentials verifies admin logins against a flat credentials file.
// A fresh install is seeded with admin/admin (bcrypt-hashed); the warning
// in the log is the nudge to change it.
type Credentials struct {
	path   string
	logger *slog.Logger
}

// OpenCredentials loads (seeding if necessary) the admin credentials file
// in dataDir.
func OpenCredentials(dataDir string, logger *slog.Logger) (*Credentials, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	c := &Credentials{
		path:   filepath.Join(dataDir, credentialsFileName),
		logger: logger,
	}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing default password: %w", err)
		}
		if err := c.write(adminFile{Username: "admin", PasswordHash: string(hash)}); err != nil {
			return nil, fmt.Errorf("seeding admin credentials: %w", err)
		}
		logger.Warn("seeded default admin credentials",
			"username", "admin",
			"hint", "change the password before exposing the admin panel")
	}

	return c, nil
}

// Verify reports whether username/password match the stored credentials.
// Any read or parse failure counts as a failed login.
func (c *Credentials) Verify(username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	stored, err := c.read()
	if err != nil {
		c.logger.Error("loading admin credentials", "error", err)
		return false
	}
	if stored.Username == "" || stored.PasswordHash == "" {
		return false
	}

	if username != stored.Username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored password hash.
func (c *Credentials) SetPassword(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return c.write(adminFile{Username: username, PasswordHash: string(hash)})
}

func (c *Credentials) read() (adminFile, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return adminFile{}, fmt.Errorf("reading %s: %w", c.path, err)
	}

	var f adminFile
	if err := json.Unmarshal(data, &f); err != nil {
		return adminFile{}, fmt.Errorf("parsing %s: %w", c.path, err)
	}
	return f, nil
}

func (c *Credentials) write(f adminFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), credentialsFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing credentials file: %w", err)
	}
	return nil
}
