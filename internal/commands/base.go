package commands

import (
	"context"
	"log/slog"

	"github.com/alan/pr-checks/cmd"
	"github.com/alan/pr-checks/internal/github"
	"github.com/sethvargo/go-envconfig"
)

// CheckContext is everything a check needs to know about the PR under test
type CheckContext struct {
	Token     string
	Owner     string
	Repo      string
	Ref       string
	EventName string
	PRNumber  int
	AllowList cmd.AllowList
	OCAURL    string
}

// BaseCommand provides common fields and initialization for both checks
type BaseCommand struct {
	ConfigFile   *string
	LoadConfig   func(string) (*cmd.Config, error)
	Lookuper     envconfig.Lookuper // process environment when nil
	GitHubClient *github.Client
	Context      context.Context
	Config       *cmd.Config
	Check        *CheckContext
}

// Init parses the arguments, reads the workflow environment and configuration, and
// creates a GitHub client scoped to the repository under test
func (bc *BaseCommand) Init(ctx context.Context, args []string) error {
	parsed, err := ParseCheckArgs(args)
	if err != nil {
		return err
	}

	env, err := LoadEnvironment(ctx, bc.Lookuper)
	if err != nil {
		return err
	}
	owner, repo, err := SplitRepository(env.Repository)
	if err != nil {
		return err
	}

	config, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	bc.Config = config

	number, err := ResolvePRNumber(env.EventName, env.Ref, parsed.PRNumber)
	if err != nil {
		return err
	}

	bc.Check = &CheckContext{
		Token:     parsed.Token,
		Owner:     owner,
		Repo:      repo,
		Ref:       env.Ref,
		EventName: env.EventName,
		PRNumber:  number,
		AllowList: ParseAllowList(parsed.ValidLabels),
		OCAURL:    config.OCA.BaseURL,
	}
	if env.OCAAPIURL != "" {
		bc.Check.OCAURL = env.OCAAPIURL
	}

	slog.Info("Loaded check context", "repository", env.Repository, "event", env.EventName, "ref", env.Ref, "pr", number)
	DisplayCheckContext(bc.Check)

	bc.Context = ctx
	bc.GitHubClient = github.NewClient(ctx, parsed.Token).WithRepository(owner, repo)
	if env.APIURL != "" {
		bc.GitHubClient, err = bc.GitHubClient.WithBaseURL(env.APIURL)
		if err != nil {
			return err
		}
	}

	return nil
}
