package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/medboard/internal/client"
	"github.com/terraincognita07/medboard/internal/services"
	"github.com/terraincognita07/medboard/internal/symptoms"
)

const offlineMessage = "⚠️ No probable disease found (offline mode)."

type RemoteDiagnoser interface {
	Diagnose(ctx context.Context, query string) (services.Answer, error)
}

// RunDiagnoseCommand answers from the local knowledge base and asks the
// server only when no symptom is recognized.
func RunDiagnoseCommand(ctx context.Context, resolver *symptoms.Resolver, remote RemoteDiagnoser, query string, out io.Writer) error {
	outcome := resolver.Resolve(query)
	switch outcome.Kind {
	case symptoms.OutcomeEmptyQuery:
		return services.ErrEmptyQuery
	case symptoms.OutcomeAnswer:
		fmt.Fprintln(out, outcome.Text)
		return nil
	}

	answer, err := remote.Diagnose(ctx, query)
	var remoteErr *client.RemoteError
	switch {
	case err == nil:
		fmt.Fprintln(out, answer.Text)
		return nil
	case errors.Is(err, client.ErrServerUnreachable):
		fmt.Fprintln(out, offlineMessage)
		return err
	case errors.As(err, &remoteErr):
		fmt.Fprintf(out, "⚠️ %s\n", remoteErr.Message)
		return err
	default:
		return err
	}
}
