package args

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON writes the record as an object whose fields keep the record order.
func (r Record) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, a := range r.args {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(a.Key)
		stream.WriteVal(a.Value.Raw())
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
