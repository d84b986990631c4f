package repositories

import "encoding/json"

// jsonbArg encodes v for a JSONB parameter; a nil pointer becomes SQL NULL.
func jsonbArg[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// scanJSONB decodes a nullable JSONB column into a freshly allocated T.
func scanJSONB[T any](raw []byte) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
