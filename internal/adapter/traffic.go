package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/smartcity/gateway/internal/domain"
)

const trafficQuery = `query($roadId: String!) { getTraffic(roadId: $roadId) { roadId congestionLevel averageSpeed } }`

// TrafficClient talks to the traffic backend over GraphQL
type TrafficClient struct {
	base
	endpoint string
}

// NewTrafficClient creates a GraphQL client posting to endpoint
func NewTrafficClient(endpoint string, opts Options) *TrafficClient {
	return &TrafficClient{base: newBase(opts), endpoint: endpoint}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GetTraffic returns congestion for roadID. A null getTraffic result is an
// unknown road and yields domain.UnknownTraffic.
func (c *TrafficClient) GetTraffic(ctx context.Context, roadID string) (domain.Traffic, error) {
	if strings.TrimSpace(roadID) == "" {
		return domain.Traffic{}, ErrEmptyKey
	}

	return invoke(ctx, c.base, domain.BackendTraffic, func(ctx context.Context) (domain.Traffic, error) {
		payload, err := json.Marshal(graphQLRequest{
			Query:     trafficQuery,
			Variables: map[string]any{"roadId": roadID},
		})
		if err != nil {
			return domain.Traffic{}, protocolFault(domain.BackendTraffic, "marshal query: %v", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return domain.Traffic{}, protocolFault(domain.BackendTraffic, "create request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		code, body, err := c.do(req)
		if err != nil {
			return domain.Traffic{}, err
		}
		if code != http.StatusOK {
			return domain.Traffic{}, statusError(domain.BackendTraffic, code, body)
		}
		return decodeTraffic(roadID, body)
	})
}

func decodeTraffic(roadID string, body []byte) (domain.Traffic, error) {
	if !gjson.ValidBytes(body) {
		return domain.Traffic{}, protocolFault(domain.BackendTraffic, "invalid json response")
	}

	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		return domain.Traffic{}, protocolFault(domain.BackendTraffic, "graphql: %s", errs.Array()[0].Get("message").String())
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return domain.Traffic{}, protocolFault(domain.BackendTraffic, "missing data field")
	}

	node := data.Get("getTraffic")
	if !node.Exists() || node.Type == gjson.Null {
		return domain.UnknownTraffic(roadID), nil
	}

	level := node.Get("congestionLevel")
	speed := node.Get("averageSpeed")
	if level.Type != gjson.String || speed.Type != gjson.Number {
		return domain.Traffic{}, protocolFault(domain.BackendTraffic, "unexpected getTraffic shape: %s", node.Raw)
	}

	id := node.Get("roadId").String()
	if id == "" {
		id = roadID
	}

	return domain.Traffic{
		RoadID:          id,
		CongestionLevel: level.String(),
		AverageSpeed:    speed.Float(),
	}, nil
}
