package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

func ClassifyIntent(ctx context.Context, in *GraphState, classifier contractx.Classifier) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Message == "" {
		in.Intent = contractx.IntentGeneral
		return in, nil
	}

	in.Intent = classifier.Classify(ctx, in.Message)
	return in, nil
}
