package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Chative-Store-Assistant/agent/nodes"
)

const (
	nodeValidateRequest = "validate_request"
	nodeClassifyIntent  = "classify_intent"
	nodeDispatchAgent   = "dispatch_agent"
	nodeClarify         = "clarify"
)

func (o *Orchestrator) compileRouteGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodeValidateRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode(nodeClassifyIntent,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(ctx, in, o.classifier)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode(nodeDispatchAgent,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.DispatchAgent(ctx, in, o.agents, o.metrics)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_agent: %w", err)
	}

	if err := graph.AddLambdaNode(nodeClarify,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.Clarify(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node clarify: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if _, ok := o.agents.Lookup(in.Intent); ok {
				return nodeDispatchAgent, nil
			}
			return nodeClarify, nil
		},
		map[string]bool{
			nodeDispatchAgent: true,
			nodeClarify:       true,
		},
	)
	if err := graph.AddBranch(nodeClassifyIntent, branch); err != nil {
		return nil, fmt.Errorf("add route branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodeValidateRequest},
		{nodeValidateRequest, nodeClassifyIntent},
		{nodeDispatchAgent, compose.END},
		{nodeClarify, compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.route"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
