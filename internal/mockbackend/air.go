package mockbackend

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/gateway/internal/repository/memory"
)

type airRequestEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Call *struct {
			City string `xml:"city"`
		} `xml:"get_air_quality"`
	} `xml:"Body"`
}

const airResponseTemplate = `<?xml version='1.0' encoding='UTF-8'?>
<soap11env:Envelope xmlns:soap11env="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tns="smartcity.air"><soap11env:Body><tns:get_air_qualityResponse><tns:get_air_qualityResult><tns:station>%s</tns:station><tns:aqi>%d</tns:aqi><tns:co2>%s</tns:co2><tns:status>%s</tns:status></tns:get_air_qualityResult></tns:get_air_qualityResponse></soap11env:Body></soap11env:Envelope>`

const faultTemplate = `<?xml version='1.0' encoding='UTF-8'?>
<soap11env:Envelope xmlns:soap11env="http://schemas.xmlsoap.org/soap/envelope/"><soap11env:Body><soap11env:Fault><faultcode>soap11env:Client</faultcode><faultstring>%s</faultstring></soap11env:Fault></soap11env:Body></soap11env:Envelope>`

// NewAirApp serves get_air_quality over SOAP 1.1 at "/"
func NewAirApp(logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "Service Air (SOAP)", DisableStartupMessage: true})

	app.Post("/", func(c *fiber.Ctx) error {
		var env airRequestEnvelope
		if err := xml.Unmarshal(c.Body(), &env); err != nil || env.Body.Call == nil {
			c.Set(fiber.HeaderContentType, "text/xml; charset=utf-8")
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf(faultTemplate, escape("requested operation not found")))
		}

		city := env.Body.Call.City
		logger.Debug("air request", "city", city)
		data := memory.LookupAir(city)

		c.Set(fiber.HeaderContentType, "text/xml; charset=utf-8")
		return c.SendString(fmt.Sprintf(airResponseTemplate,
			escape(data.Station),
			data.AQI,
			strconv.FormatFloat(data.CO2, 'f', -1, 64),
			escape(data.Status),
		))
	})

	return app
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
