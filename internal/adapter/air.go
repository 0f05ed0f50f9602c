package adapter

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/smartcity/gateway/internal/domain"
)

// SOAP 1.1 envelope for get_air_quality in the smartcity.air namespace
const airEnvelopeHead = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tns="smartcity.air">
  <soapenv:Body>
    <tns:get_air_quality>
      <tns:city>`

const airEnvelopeTail = `</tns:city>
    </tns:get_air_quality>
  </soapenv:Body>
</soapenv:Envelope>`

// AirClient talks to the air quality backend over SOAP
type AirClient struct {
	base
	endpoint string
}

// NewAirClient creates a SOAP client posting to endpoint
func NewAirClient(endpoint string, opts Options) *AirClient {
	return &AirClient{base: newBase(opts), endpoint: endpoint}
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    soapBody `xml:"Body"`
}

type soapBody struct {
	Fault    *soapFault          `xml:"Fault"`
	Response *airQualityResponse `xml:"get_air_qualityResponse"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

type airQualityResponse struct {
	Result *airData `xml:"get_air_qualityResult"`
}

type airData struct {
	Station string  `xml:"station"`
	AQI     int     `xml:"aqi"`
	CO2     float64 `xml:"co2"`
	Status  string  `xml:"status"`
}

// GetAirQuality returns the reading for city. Unknown cities yield the
// backend's sentinel record, not an error.
func (c *AirClient) GetAirQuality(ctx context.Context, city string) (domain.AirQuality, error) {
	if strings.TrimSpace(city) == "" {
		return domain.AirQuality{}, ErrEmptyKey
	}

	return invoke(ctx, c.base, domain.BackendAir, func(ctx context.Context) (domain.AirQuality, error) {
		payload, err := encodeAirRequest(city)
		if err != nil {
			return domain.AirQuality{}, fmt.Errorf("encode request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return domain.AirQuality{}, protocolFault(domain.BackendAir, "create request: %v", err)
		}
		req.Header.Set("Content-Type", "text/xml; charset=utf-8")
		req.Header.Set("SOAPAction", `"get_air_quality"`)

		code, body, err := c.do(req)
		if err != nil {
			return domain.AirQuality{}, err
		}
		return decodeAirResponse(code, body)
	})
}

func encodeAirRequest(city string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(airEnvelopeHead)
	if err := xml.EscapeText(&buf, []byte(city)); err != nil {
		return nil, err
	}
	buf.WriteString(airEnvelopeTail)
	return buf.Bytes(), nil
}

func decodeAirResponse(code int, body []byte) (domain.AirQuality, error) {
	var env soapEnvelope
	parseErr := xml.Unmarshal(body, &env)

	// SOAP 1.1 reports faults with HTTP 500 and a Fault element
	if parseErr == nil && env.Body.Fault != nil {
		return domain.AirQuality{}, protocolFault(domain.BackendAir, "soap fault %s: %s", env.Body.Fault.Code, env.Body.Fault.String)
	}
	if code < 200 || code >= 300 {
		return domain.AirQuality{}, statusError(domain.BackendAir, code, body)
	}
	if parseErr != nil {
		return domain.AirQuality{}, protocolFault(domain.BackendAir, "decode envelope: %v", parseErr)
	}
	if env.Body.Response == nil {
		return domain.AirQuality{}, protocolFault(domain.BackendAir, "missing get_air_qualityResponse")
	}

	res := env.Body.Response.Result
	if res == nil || (res.Station == "" && res.Status == "") {
		return domain.UnknownAirQuality(), nil
	}

	return domain.AirQuality{
		Station: res.Station,
		AQI:     res.AQI,
		CO2:     res.CO2,
		Status:  res.Status,
	}, nil
}
