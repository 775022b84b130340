// Package gitrepo exposes the tag namespace of the publishing destination
// through the working clone's remote.
package gitrepo

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TagService = (*Service)(nil)

// Service implements ports.TagService. Existence queries go to the remote's
// tag namespace, which is the resource shared between concurrent runs; a
// clone without a remote falls back to its local refs.
type Service struct {
	remote string
	token  string

	mu    sync.Mutex
	repos map[string]*git.Repository
}

// NewService creates a tag service. The token is used to authenticate
// remote listing and tag pushes; an empty token works anonymously.
func NewService(token string) *Service {
	return &Service{
		remote: "origin",
		token:  token,
		repos:  make(map[string]*git.Repository),
	}
}

// open opens the repository at path, caching the handle per path.
func (s *Service) open(path string) (*git.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if repo, ok := s.repos[path]; ok {
		return repo, nil
	}
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open repository"), "path", path)
	}
	s.repos[path] = repo
	return repo, nil
}

// Exists reports whether a tag with exactly this name exists on the remote.
// Lookup is an exact reference match; a failed query propagates, since
// assuming non-existence risks a duplicate release.
func (s *Service) Exists(ctx context.Context, repoDir, name string) (bool, error) {
	repo, err := s.open(repoDir)
	if err != nil {
		return false, err
	}

	remote, err := repo.Remote(s.remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return s.localTagExists(repo, name)
		}
		return false, zerr.Wrap(err, "failed to resolve remote")
	}

	return s.remoteTagExists(ctx, remote, name)
}

func (s *Service) localTagExists(repo *git.Repository, name string) (bool, error) {
	_, err := repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "tag lookup failed"), "tag", name)
}

func (s *Service) remoteTagExists(ctx context.Context, remote *git.Remote, name string) (bool, error) {
	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: s.auth()})
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "remote tag listing failed"), "tag", name)
	}

	want := plumbing.NewTagReferenceName(name)
	for _, ref := range refs {
		if ref.Name() == want {
			return true, nil
		}
	}
	return false, nil
}

// Create creates an annotated tag at the current head and pushes it to the
// remote, making it externally observable. A repository without the remote
// keeps the tag local.
func (s *Service) Create(ctx context.Context, repoDir, name, message string) error {
	repo, err := s.open(repoDir)
	if err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve head")
	}

	_, err = repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "shipper", Email: "shipper@localhost", When: time.Now()},
		Message: message,
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create tag"), "tag", name)
	}

	return s.push(ctx, repo, name)
}

func (s *Service) push(ctx context.Context, repo *git.Repository, name string) error {
	remote, err := repo.Remote(s.remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return nil
		}
		return zerr.Wrap(err, "failed to resolve remote")
	}

	opts := &git.PushOptions{
		RemoteName: s.remote,
		RefSpecs: []config.RefSpec{
			config.RefSpec("refs/tags/" + name + ":refs/tags/" + name),
		},
		Auth: s.auth(),
	}

	err = repo.PushContext(ctx, opts)
	if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}

	// A rejected push may mean a concurrent run tagged this version first.
	// The desired end state exists, so that rejection is not a failure.
	exists, existsErr := s.remoteTagExists(ctx, remote, name)
	if existsErr == nil && exists {
		return nil
	}
	return zerr.With(zerr.Wrap(err, "failed to push tag"), "tag", name)
}

func (s *Service) auth() transport.AuthMethod {
	if s.token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: s.token}
}

// TokenFromEnv reads the release host credential from the environment.
func TokenFromEnv() string {
	return os.Getenv("GITHUB_TOKEN")
}
