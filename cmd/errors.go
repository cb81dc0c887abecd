package cmd

import "errors"

var (
	// ErrInvalidArguments is returned when the positional arguments are malformed.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrMissingEnvironment is returned when a required workflow variable is absent.
	ErrMissingEnvironment = errors.New("missing environment")
	// ErrInvalidPRNumber signals a PR number input that is not an integer.
	ErrInvalidPRNumber = errors.New("invalid pull request number")
	// ErrPRNumberNotFound signals a ref that does not name a pull request merge ref.
	ErrPRNumberNotFound = errors.New("pull request number not found")
	// ErrUnsupportedForkTrigger signals a fork PR checked outside pull_request_target.
	ErrUnsupportedForkTrigger = errors.New("PRs from forks are only supported when triggered on \"pull_request_target\"")
	// ErrVerificationTransport signals that the membership service could not be reached.
	ErrVerificationTransport = errors.New("verification transport error")
	// ErrUnexpectedVerificationStatus marks a membership answer other than 200/404.
	// It is logged and counted, never returned as a fatal error.
	ErrUnexpectedVerificationStatus = errors.New("unexpected verification status")
	// ErrLabelMutation signals a failed label create/attach/detach.
	ErrLabelMutation = errors.New("label mutation failed")
	// ErrStatusPublish signals a failed commit status creation.
	ErrStatusPublish = errors.New("status publish failed")
	// ErrPollTimeout signals that the merge commit SHA never became available.
	ErrPollTimeout = errors.New("timed out waiting for merge commit")
	// ErrCheckFailed is returned when a check ran to completion with a failing verdict.
	ErrCheckFailed = errors.New("check failed")
)
