package utils

import (
	"bytes"
	stdjson "encoding/json"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson indenta com tabs; []byte é tratado como JSON já codificado
func PrettyJson(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var out bytes.Buffer
		if err := stdjson.Indent(&out, raw, "", "\t"); err != nil {
			return "", err
		}
		return out.String(), nil
	}

	buffer, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		return "", err
	}

	return string(buffer), nil
}

// JoinKey junta os valores de uma chave de agrupamento para exibição
func JoinKey(key []string) string {
	return strings.Join(key, " / ")
}
