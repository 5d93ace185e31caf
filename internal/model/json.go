package model

import "encoding/json"

func unmarshalJSON(raw []byte, out any) error {
	return json.Unmarshal(raw, out)
}
