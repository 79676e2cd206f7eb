package chat

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jwalitptl/zyra-api/internal/model"
)

type PromptConfig struct {
	AssistantName  string
	TenantAware    bool
	CatalogAware   bool
	CurrencySymbol string
}

type promptData struct {
	Assistant string
	Business  string
	Catalog   []string
}

var systemTemplate = template.Must(template.New("system").Parse(`You are {{.Assistant}}, an intelligent, friendly AI booking assistant{{if .Business}} for {{.Business}}{{else}} used by service-based businesses{{end}}.
{{- if .Catalog}}

Services currently offered:
{{- range .Catalog}}
{{.}}
{{- end}}
Only offer the services listed above. Use their exact names.
{{- end}}

Your core responsibilities:
1. Help clients understand available services, prices, and booking options.
2. Guide clients through booking step by step. You need their name, the service, the date, the time and a phone number.
3. If a client gives several details at once, such as "a haircut Friday at 3pm", take them all and only ask for what is missing.
4. Always confirm missing details. Never assume anything you aren't told.
5. Once every detail is collected, reply with the booking summary as JSON in exactly this shape and nothing else:
{
  "name": "",
  "phone": "",
  "service": "",
  "date": "",
  "time": "",
  "notes": ""
}

Tone:
- Warm, professional, helpful.
- Speak in short, clean sentences.
- Never show JSON to the client unless it's the final booking summary.
- If a client just asks a question and is not booking, respond normally with helpful info.`))

// BuildSystemPrompt renders the system context for one conversation turn.
func BuildSystemPrompt(cfg PromptConfig, tenant *model.Tenant, services []*model.Service) (string, error) {
	data := promptData{Assistant: cfg.AssistantName}
	if data.Assistant == "" {
		data.Assistant = "Zyra"
	}
	if cfg.TenantAware && tenant != nil {
		data.Business = tenant.Name
	}
	if cfg.CatalogAware {
		data.Catalog = catalogLines(services, cfg.CurrencySymbol)
	}

	var sb strings.Builder
	if err := systemTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return sb.String(), nil
}

func catalogLines(services []*model.Service, currency string) []string {
	lines := make([]string, 0, len(services))
	for _, s := range services {
		line := fmt.Sprintf("- %s (%s%.2f, %d min)", s.Name, currency, s.Price, s.Duration)
		if s.Description != "" {
			line += ": " + s.Description
		}
		lines = append(lines, line)
	}
	return lines
}
