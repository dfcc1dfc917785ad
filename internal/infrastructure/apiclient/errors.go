package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind origen de la falla de una llamada remota.
type Kind string

const (
	KindTransport Kind = "transport" // sin respuesta HTTP (red, DNS, timeout)
	KindAPI       Kind = "api"       // respuesta no 2xx
	KindDecode    Kind = "decode"    // 2xx con cuerpo ilegible
)

// Mensajes que se muestran al usuario cuando no hay uno del servidor.
const (
	MessageFallback  = "An error occurred"
	MessageTransport = "Could not reach the server. Check your connection and try again."
	MessageDecode    = "The server sent an unexpected response."
)

// Error única forma de falla del cliente. Message es siempre apto para mostrar;
// el detalle técnico queda en Err.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

// Unwrap expone la causa (p. ej. context.DeadlineExceeded).
func (e *Error) Unwrap() error { return e.Err }

// Detail texto para logs, con status y causa.
func (e *Error) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " code=%s", e.Code)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, " err=%v", e.Err)
	}
	return b.String()
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: MessageTransport, Err: err}
}

func decodeError(status int, err error) *Error {
	return &Error{Kind: KindDecode, StatusCode: status, Message: MessageDecode, Err: err}
}

// apiError arma el error de una respuesta no 2xx a partir de su cuerpo.
func apiError(status int, body []byte) *Error {
	code, msg := ExtractMessage(body)
	return &Error{Kind: KindAPI, StatusCode: status, Code: code, Message: msg}
}

// ExtractMessage obtiene código y mensaje del cuerpo de error.
// Primero el contrato {code, message}; si no, compatibilidad con servidores anteriores:
// "detail", luego "non_field_errors"[0], luego todos los valores aplanados y unidos con ", ".
func ExtractMessage(body []byte) (code, message string) {
	keys, fields, ok := decodeOrdered(body)
	if !ok {
		return "", MessageFallback
	}

	if c, m := jsonString(fields["code"]), jsonString(fields["message"]); c != "" && m != "" {
		return c, m
	}
	if d := jsonString(fields["detail"]); d != "" {
		return "", d
	}
	if raw, ok := fields["non_field_errors"]; ok {
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			if s := jsonString(list[0]); s != "" {
				return "", s
			}
		}
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, flatten(fields[k])...)
	}
	if joined := strings.Join(parts, ", "); joined != "" {
		return "", joined
	}
	return "", MessageFallback
}

// decodeOrdered decodifica un objeto JSON conservando el orden de las claves.
func decodeOrdered(body []byte) ([]string, map[string]json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, false
	}
	var keys []string
	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, false
		}
		if _, dup := fields[key]; !dup {
			keys = append(keys, key)
		}
		fields[key] = raw
	}
	return keys, fields, true
}

// flatten aplana un nivel: un arreglo aporta cada elemento, cualquier otro valor
// (null incluido, como texto vacío) aporta uno.
func flatten(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []string{scalarText(raw)}
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		out := make([]string, 0, len(list))
		for _, el := range list {
			out = append(out, scalarText(el))
		}
		return out
	}
	return []string{scalarText(raw)}
}

// scalarText texto de un valor JSON; null queda vacío y los arreglos anidados se unen con ",".
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		return jsonString(raw)
	case '[':
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) == nil {
			parts := make([]string, 0, len(list))
			for _, el := range list {
				parts = append(parts, scalarText(el))
			}
			return strings.Join(parts, ",")
		}
	}
	var buf bytes.Buffer
	if json.Compact(&buf, raw) == nil {
		return buf.String()
	}
	return string(raw)
}

func jsonString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
