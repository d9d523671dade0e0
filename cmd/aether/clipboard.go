package main

import (
	"fmt"
	"io"

	"aether/cmd/aether/projectjson"
	"aether/cmd/aether/widget"
)

func encodeClip(n widget.Node) ([]byte, error) {
	return projectjson.EncodeNode(n)
}

func decodeClip(r io.Reader) (widget.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading clipboard: %w", err)
	}
	n, err := projectjson.DecodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return n, nil
}
