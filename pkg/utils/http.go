package utils

import (
	"net/http"
)

// WriteJSON responde com o valor serializado e o status informado.
// Nada é escrito quando a serialização falha.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}
