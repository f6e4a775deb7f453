package forms

import (
	jsoniter "github.com/json-iterator/go"
)

func jsonUnmarshal(data []byte, v interface{}) error {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, v)
}
