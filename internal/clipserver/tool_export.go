package clipserver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
	"github.com/anatolykoptev/go_clipverb/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerExportDocument(server *mcp.Server, deps Deps, reg *registry) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_document",
		Description: "Save content as a branded TXT or PDF report (A4, agency header, sources list, page numbers). Without text, exports the last result from generate_content in this session together with its settings and sources. Returns the saved file path.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ExportDocumentInput) (*mcp.CallToolResult, ExportDocumentOutput, error) {
		format := strings.ToLower(strings.TrimSpace(input.Format))
		if format != clips.FormatTXT && format != clips.FormatPDF {
			return nil, ExportDocumentOutput{}, fmt.Errorf("%w: format must be txt or pdf", clips.ErrConfiguration)
		}

		doc, err := documentFromInput(reg, toolutil.SessionID(req), input)
		if err != nil {
			return nil, ExportDocumentOutput{}, err
		}

		var path string
		err = engine.TrackOperation(ctx, "export_"+format, 5*time.Second, func(context.Context) error {
			var err error
			path, err = clips.Export(deps.OutputDir, format, doc)
			return err
		})
		if err != nil {
			return nil, ExportDocumentOutput{}, err
		}
		out := ExportDocumentOutput{Path: path, Format: format}
		if info, err := os.Stat(path); err == nil {
			out.Bytes = int(info.Size())
		}
		return nil, out, nil
	})
}

// documentFromInput merges explicit fields over the session's last result.
func documentFromInput(reg *registry, sessionID string, in ExportDocumentInput) (clips.Document, error) {
	doc := clips.Document{
		ContentType:  clips.ContentSummary,
		Language:     clips.LangEnglish,
		ResearchMode: clips.ResearchEnhanced,
		Date:         time.Now(),
	}

	if c, ok := reg.peek(sessionID); ok {
		if res, cfg, ok := c.lastResult(); ok {
			doc.ContentType = cfg.ContentType()
			doc.Language = cfg.Language()
			doc.ResearchMode = cfg.ResearchMode()
			doc.Branding = cfg.Branding()
			if in.Text == "" {
				doc.Result = res
			}
		}
	}

	if in.Text != "" {
		doc.Result = clips.Result{Text: in.Text, Sources: in.Sources}
	}
	if strings.TrimSpace(doc.Result.Text) == "" {
		return clips.Document{}, fmt.Errorf("%w: text is required (no generated content in this session)", clips.ErrConfiguration)
	}

	var err error
	if in.ContentType != "" {
		if doc.ContentType, err = clips.ParseContentType(in.ContentType); err != nil {
			return clips.Document{}, err
		}
	}
	if in.Language != "" {
		if doc.Language, err = clips.ParseLanguage(in.Language); err != nil {
			return clips.Document{}, err
		}
	}
	if in.ResearchMode != "" {
		if doc.ResearchMode, err = clips.ParseResearchMode(in.ResearchMode); err != nil {
			return clips.Document{}, err
		}
	}
	if in.AgencyName != "" {
		doc.Branding.AgencyName = in.AgencyName
	}
	if in.ClientName != "" {
		doc.Branding.ClientName = in.ClientName
	}
	logo, err := decodeLogo(in.AgencyLogo)
	if err != nil {
		return clips.Document{}, err
	}
	if logo != nil {
		doc.Branding.Logo = logo
	}
	return doc, nil
}
