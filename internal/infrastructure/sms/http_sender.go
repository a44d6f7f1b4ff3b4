// Package sms contiene los adaptadores de envío de SMS: un gateway HTTP para
// producción y un emisor de consola para desarrollo.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sosmedical/clubsos-api/internal/application/ports"
)

// Verificar en tiempo de compilación que HTTPSender implementa SMSSender.
var _ ports.SMSSender = (*HTTPSender)(nil)

// HTTPSender adaptador que implementa SMSSender contra un gateway de SMS REST
// genérico (POST JSON con destino y mensaje, autenticación por bearer token).
// Usa net/http de la librería estándar de Go; no requiere SDK del proveedor.
type HTTPSender struct {
	baseURL    string
	apiKey     string
	remitente  string
	httpClient *http.Client
}

// NewHTTPSender construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewHTTPSender(baseURL, apiKey, remitente string) *HTTPSender {
	return &HTTPSender{
		baseURL:   baseURL,
		apiKey:    apiKey,
		remitente: remitente,
		httpClient: &http.Client{
			// Timeout de red de 10 s; un SMS que tarda más ya llegó tarde
			Timeout: 10 * time.Second,
		},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type smsResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Enviar despacha el mensaje al gateway. El teléfono va en E.164.
func (s *HTTPSender) Enviar(ctx context.Context, telefonoE164, mensaje string) error {
	if s.apiKey == "" {
		return fmt.Errorf("sms: SMS_API_KEY no configurada")
	}

	body, err := json.Marshal(smsRequest{To: telefonoE164, From: s.remitente, Message: mensaje})
	if err != nil {
		return fmt.Errorf("sms: serializar petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sms: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: llamada al gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("sms: leer respuesta: %w", err)
	}

	var parsed smsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode >= 300 {
			return fmt.Errorf("sms: gateway respondió %d", resp.StatusCode)
		}
		return fmt.Errorf("sms: respuesta ilegible: %w", err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("sms: gateway rechazó el envío (%s): %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms: gateway respondió %d", resp.StatusCode)
	}
	return nil
}
