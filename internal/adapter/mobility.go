package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/smartcity/gateway/internal/domain"
)

// MobilityClient talks to the mobility backend over REST
type MobilityClient struct {
	base
	baseURL string
}

// NewMobilityClient creates a REST client for the transports collection at baseURL
func NewMobilityClient(baseURL string, opts Options) *MobilityClient {
	return &MobilityClient{base: newBase(opts), baseURL: strings.TrimRight(baseURL, "/")}
}

// transportRecord is the backend's wire shape
type transportRecord struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Line        string `json:"ligne"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

func (r transportRecord) toDomain() domain.Transport {
	return domain.Transport{
		ID:          r.ID,
		Type:        r.Type,
		Line:        r.Line,
		Destination: r.Destination,
		Status:      r.Status,
	}
}

// ListTransports returns every scheduled transport
func (c *MobilityClient) ListTransports(ctx context.Context) ([]domain.Transport, error) {
	return invoke(ctx, c.base, domain.BackendMobility, func(ctx context.Context) ([]domain.Transport, error) {
		var records []transportRecord
		if err := c.getJSON(ctx, c.baseURL, &records); err != nil {
			return nil, err
		}

		out := make([]domain.Transport, 0, len(records))
		for _, r := range records {
			out = append(out, r.toDomain())
		}
		return out, nil
	})
}

// GetTransport returns one transport. A 404 from the backend becomes a KindNotFound error.
func (c *MobilityClient) GetTransport(ctx context.Context, id int) (domain.Transport, error) {
	return invoke(ctx, c.base, domain.BackendMobility, func(ctx context.Context) (domain.Transport, error) {
		var record transportRecord
		if err := c.getJSON(ctx, c.baseURL+"/"+strconv.Itoa(id), &record); err != nil {
			return domain.Transport{}, err
		}
		return record.toDomain(), nil
	})
}

func (c *MobilityClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return protocolFault(domain.BackendMobility, "create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	code, body, err := c.do(req)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return statusError(domain.BackendMobility, code, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return protocolFault(domain.BackendMobility, "decode response: %v", err)
	}
	return nil
}
