package configutil

import (
	"fmt"
	"net/url"
	"strings"
)

// DBCertificates holds PEM contents handed over through the environment
// rather than as files on disk.
type DBCertificates struct {
	ClientCert string
	ClientKey  string
	ServerCA   string
}

func (c DBCertificates) IsEmpty() bool {
	return c.ClientCert == "" && c.ClientKey == "" && c.ServerCA == ""
}

// LookupDBCertificates reads <prefix>_CLIENT_CERT, <prefix>_CLIENT_KEY and
// <prefix>_SERVER_CA.
func (l LookupFunc) LookupDBCertificates(prefix string) DBCertificates {
	certs := DBCertificates{}
	l.SetString(prefix+"_CLIENT_CERT", &certs.ClientCert)
	l.SetString(prefix+"_CLIENT_KEY", &certs.ClientKey)
	l.SetString(prefix+"_SERVER_CA", &certs.ServerCA)
	return certs
}

// MaterializeDBURL writes the certificates to files under /tmp/<dbName> and
// points the connection parameters of dbURL at them. Client certificates are
// only supported for postgres.
func MaterializeDBURL(dbName string, dbURL string, certs DBCertificates) (string, error) {
	if certs.IsEmpty() {
		return dbURL, nil
	}

	base, rawQuery, _ := strings.Cut(dbURL, "?")
	parameters, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("failed to parse query of %s url: %w", dbName, err)
	}

	isPostgres := strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://")
	if !isPostgres && (certs.ClientCert != "" || certs.ClientKey != "") {
		return "", fmt.Errorf("client certificates for %s are only supported for postgres", dbName)
	}

	if err := materializeConnectionParameter(dbName, parameters, "client_cert.sslcert", "sslcert", certs.ClientCert); err != nil {
		return "", err
	}
	if err := materializeConnectionParameter(dbName, parameters, "client_key.sslkey", "sslkey", certs.ClientKey); err != nil {
		return "", err
	}
	if err := materializeConnectionParameter(dbName, parameters, "server_ca.sslrootcert", "sslrootcert", certs.ServerCA); err != nil {
		return "", err
	}

	return base + "?" + parameters.Encode(), nil
}

func materializeConnectionParameter(dbName string, parameters url.Values, fileName string, connectionParameter string, content string) error {
	if content == "" {
		return nil
	}
	createdFile, err := writeDBCertificate(dbName, fileName, content)
	if err != nil {
		return err
	}
	parameters.Set(connectionParameter, createdFile)
	return nil
}
