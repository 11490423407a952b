package utils

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"portfolio-backend/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/certificates.html
var templateFS embed.FS

var certificatesTmpl = template.Must(template.ParseFS(templateFS, "templates/certificates.html"))

// RenderCertificatesHTML produces the printable page for the export.
func RenderCertificatesHTML(certs []*models.Certificate, now time.Time) ([]byte, error) {
	data := models.CertificatesPDFData{
		Title:        "Certificates",
		GeneratedAt:  now.Format("02-Jan-2006"),
		Certificates: certs,
		Count:        len(certs),
	}
	for _, c := range certs {
		if c.Winner {
			data.Winners++
		}
	}

	var buf bytes.Buffer
	if err := certificatesTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDFGenerator prints HTML to A4 PDF with headless Chrome.
type PDFGenerator struct {
	Timeout time.Duration
}

func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{Timeout: 30 * time.Second}
}

// CertificatesPDF renders certs and prints them through chromedp.
func (g *PDFGenerator) CertificatesPDF(ctx context.Context, certs []*models.Certificate) ([]byte, error) {
	html, err := RenderCertificatesHTML(certs, time.Now())
	if err != nil {
		return nil, err
	}

	tmpHTML := filepath.Join(os.TempDir(), "certificates_"+time.Now().Format("20060102150405.000000000")+".html")
	if err := os.WriteFile(tmpHTML, html, 0o644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancelChrome := chromedp.NewContext(ctx)
	defer cancelChrome()
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
