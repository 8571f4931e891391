// Package mapfile loads memory map descriptions from YAML files.
//
// A file holds a single map, a list of maps, or several YAML documents.
// Numeric positions may be written as $(...) expressions over the
// document's equates: table, so bases, offsets and strides can be
// computed rather than spelled out. Loaded maps come back resolved;
// validation remains a separate pre-flight step for the caller.
package mapfile

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bleviet/ipcraft/memmap"
)

// Load reads a single memory map from the reader. A document holding a
// list of maps yields the first one.
func Load(r io.Reader) (mm *memmap.MemoryMap, err error) {
	mms, err := LoadAll(r)
	if err != nil {
		return
	}
	if len(mms) == 0 {
		err = ErrNoMap
		return
	}

	mm = mms[0]
	return
}

// LoadAll reads every memory map from the reader, across list forms and
// multi-document streams, in order.
func LoadAll(r io.Reader) (mms []*memmap.MemoryMap, err error) {
	decoder := yaml.NewDecoder(r)

	for {
		var doc yaml.Node
		err = decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			mms = nil
			return
		}

		var loaded []*memmap.MemoryMap
		loaded, err = loadDocument(&doc)
		if err != nil {
			mms = nil
			return
		}
		mms = append(mms, loaded...)
	}
}

// LoadFile reads every memory map from the file. Failures come back as
// a *ParseError naming the path.
func LoadFile(path string) (mms []*memmap.MemoryMap, err error) {
	file, err := os.Open(path)
	if err != nil {
		err = &ParseError{Path: path, Err: err}
		return
	}
	defer file.Close()

	mms, err = LoadAll(file)
	if err != nil {
		err = &ParseError{Path: path, Err: err}
	}
	return
}

func loadDocument(doc *yaml.Node) (mms []*memmap.MemoryMap, err error) {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var roots []*yaml.Node
	switch node.Kind {
	case yaml.MappingNode:
		roots = []*yaml.Node{node}
	case yaml.SequenceNode:
		roots = node.Content
	default:
		err = ErrNoMap
		return
	}

	for _, root := range roots {
		var mm *memmap.MemoryMap
		mm, err = loadMap(root)
		if err != nil {
			mms = nil
			return
		}
		mms = append(mms, mm)
	}
	return
}

func loadMap(root *yaml.Node) (mm *memmap.MemoryMap, err error) {
	eq := newEquates()
	err = eq.collect(root)
	if err != nil {
		return
	}
	err = eq.expand(root)
	if err != nil {
		return
	}

	mm = &memmap.MemoryMap{}
	err = root.Decode(mm)
	if err != nil {
		mm = nil
		return
	}

	err = mm.Resolve()
	if err != nil {
		mm = nil
	}
	return
}
