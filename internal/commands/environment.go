package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alan/pr-checks/cmd"
	"github.com/sethvargo/go-envconfig"
)

// Environment holds the workflow variables provided by GitHub Actions
type Environment struct {
	Repository string `env:"GITHUB_REPOSITORY,required"`
	Ref        string `env:"GITHUB_REF,required"`
	EventName  string `env:"GITHUB_EVENT_NAME,required"`
	APIURL     string `env:"GITHUB_API_URL"`
	OCAAPIURL  string `env:"OCA_API_URL"`
}

// LoadEnvironment reads the workflow variables through lookuper, the process
// environment when nil
func LoadEnvironment(ctx context.Context, lookuper envconfig.Lookuper) (*Environment, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var env Environment
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", cmd.ErrMissingEnvironment, err)
	}

	return &env, nil
}

// SplitRepository splits GITHUB_REPOSITORY into owner and name
func SplitRepository(repository string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: GITHUB_REPOSITORY must be owner/name, got %q", cmd.ErrMissingEnvironment, repository)
	}
	return owner, name, nil
}
