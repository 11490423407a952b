package models

// CertificatesPDFData feeds the certificates export template.
type CertificatesPDFData struct {
	Title        string
	GeneratedAt  string
	Certificates []*Certificate
	Count        int
	Winners      int
}
