package apiclient

import (
	"crypto/tls"
	"net/http"
)

// ApplySSLIgnoreConfiguration disables certificate verification on the transport at the
// bottom of httpClient's round tripper chain, for servers with self-signed certificates.
func ApplySSLIgnoreConfiguration(httpClient *http.Client) {
	if httpClient.Transport == nil {
		httpClient.Transport = &http.Transport{}
	}
	httpClient.Transport = ignoreSSLErrors(httpClient.Transport)
}

func ignoreSSLErrors(rt http.RoundTripper) http.RoundTripper {
	switch transport := rt.(type) {
	case *http.Transport:
		if transport.TLSClientConfig != nil {
			transport.TLSClientConfig.InsecureSkipVerify = true
		} else {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		return transport
	case *SpinnerRoundTripper:
		transport.Next = ignoreSSLErrors(transport.Next)
		return transport
	case *UserAgentRoundTripper:
		transport.Next = ignoreSSLErrors(transport.Next)
		return transport
	default:
		// unknown or missing transport; replace it with one that skips verification
		return &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}
