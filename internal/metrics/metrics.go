// Package metrics holds the Prometheus collectors of the header pipeline.
package metrics

import "github.com/goodnatureofminers/htmlcoin-retarget/internal/model"

const namespace = "htmlcoin_retarget"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func networkLabel(network model.Network) string {
	if network == "" {
		return "unknown"
	}
	return string(network)
}
