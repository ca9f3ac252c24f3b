package gitsource

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"vanet-hq/saturn/pkg/config"
)

// AuthProvider supplies git transport credentials.
type AuthProvider interface {
	// GetAuth returns the git transport authentication method.
	GetAuth() (transport.AuthMethod, error)

	// Type returns the auth type for logging purposes.
	Type() string
}

// TokenAuth authenticates https remotes with a personal access token.
// Works with GitHub, GitLab, and Bitbucket tokens.
type TokenAuth struct {
	username string
	token    string
}

// NewTokenAuth creates a token auth provider. An empty username defaults
// to "git", which is what the major forges expect for token auth.
func NewTokenAuth(username, token string) *TokenAuth {
	if username == "" {
		username = config.DefaultGitUsername
	}
	return &TokenAuth{username: username, token: token}
}

// GetAuth returns HTTP basic auth with the token as the password.
func (a *TokenAuth) GetAuth() (transport.AuthMethod, error) {
	if a.token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	return &githttp.BasicAuth{
		Username: a.username,
		Password: a.token,
	}, nil
}

// Type returns the authentication type.
func (a *TokenAuth) Type() string {
	return "token"
}

// SSHAuth authenticates ssh remotes with a private key file. The key
// must not require a passphrase.
type SSHAuth struct {
	keyPath string
}

// NewSSHAuth creates an SSH key auth provider for the given private key
// file.
func NewSSHAuth(keyPath string) *SSHAuth {
	return &SSHAuth{keyPath: keyPath}
}

// GetAuth loads the private key and returns public key authentication.
// The key file must exist and must not be readable by group or other.
func (a *SSHAuth) GetAuth() (transport.AuthMethod, error) {
	if a.keyPath == "" {
		return nil, fmt.Errorf("ssh key path cannot be empty")
	}

	info, err := os.Stat(a.keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access SSH key file: %w", err)
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		return nil, fmt.Errorf("SSH key file permissions too open (%o), should be 0600", mode)
	}

	auth, err := gitssh.NewPublicKeysFromFile("git", a.keyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key: %w", err)
	}

	return auth, nil
}

// Type returns the authentication type.
func (a *SSHAuth) Type() string {
	return "ssh"
}

// NoAuth is the provider for public repositories.
type NoAuth struct{}

// NewNoAuth creates a no-authentication provider.
func NewNoAuth() *NoAuth {
	return &NoAuth{}
}

// GetAuth returns nil authentication.
func (a *NoAuth) GetAuth() (transport.AuthMethod, error) {
	return nil, nil
}

// Type returns the authentication type.
func (a *NoAuth) Type() string {
	return "none"
}

// NewAuthProvider picks an auth provider from configuration. The kind is
// inferred from which credential fields are set; setting both a token
// and an ssh key is a configuration mistake.
func NewAuthProvider(cfg *config.GitAuthConfig) (AuthProvider, error) {
	if cfg == nil {
		return NewNoAuth(), nil
	}

	switch {
	case cfg.Token != "" && cfg.SSHKeyPath != "":
		return nil, fmt.Errorf("both token and ssh key configured, set only one")

	case cfg.Token != "":
		return NewTokenAuth(cfg.Username, cfg.Token), nil

	case cfg.SSHKeyPath != "":
		return NewSSHAuth(cfg.SSHKeyPath), nil

	default:
		return NewNoAuth(), nil
	}
}
