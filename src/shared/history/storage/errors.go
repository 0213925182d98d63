package historystorage

import "github.com/cockroachdb/errors/domains"

var (
	IDEmptyMark      = domains.New("id_empty")
	MarshalMark      = domains.New("marshal")
	UnmarshalMark    = domains.New("unmarshal")
	DefaultErrorMark = domains.New("default_error")
)
