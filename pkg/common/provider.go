package common

type Provider string

const (
	GCS Provider = "GCS"
)
