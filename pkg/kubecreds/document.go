package kubecreds

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	CertificateDataKey = "client-certificate-data"
	KeyDataKey         = "client-key-data"
)

// Document is the part of a kubeconfig that holds user credentials. Every
// other top level key (clusters, contexts, preferences...) is ignored.
type Document struct {
	Users []UserEntry

	// hasUsers separates a document without a users key from one with an
	// empty users list.
	hasUsers bool
}

// UserEntry is a single element of the kubeconfig users list.
type UserEntry struct {
	Name string
	// User is nil when the entry has no user mapping.
	User *Credentials
}

// Credentials holds the scalar fields of a user mapping, keyed by their
// kubeconfig name (client-certificate-data, client-key-data, token...).
type Credentials struct {
	fields map[string]string
}

// Parse decodes kubeconfig contents. It returns ErrEmptyDocument when the
// contents hold no document or a null one, and ErrParse when they hold more
// than one document.
func Parse(data []byte) (*Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	root := yaml.Node{}
	err := decoder.Decode(&root)
	if err == io.EOF {
		return nil, errors.WithStack(ErrEmptyDocument)
	} else if err != nil {
		return nil, errors.Wrapf(ErrParse, "%v", err)
	}

	// A kubeconfig is a single document, anything after a second --- is
	// rejected rather than ignored.
	extra := yaml.Node{}
	if err := decoder.Decode(&extra); err == nil {
		return nil, shapeError(&extra, "expected a single document, found more than one")
	} else if err != io.EOF {
		return nil, errors.Wrapf(ErrParse, "%v", err)
	}

	if root.Kind == 0 || len(root.Content) == 0 || isNull(root.Content[0]) {
		return nil, errors.WithStack(ErrEmptyDocument)
	}

	doc := &Document{}
	if err := doc.UnmarshalYAML(root.Content[0]); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	if value.Kind != yaml.MappingNode {
		return shapeError(value, "top level value must be a mapping")
	}
	for _, pair := range lo.Chunk(value.Content, 2) {
		if len(pair) != 2 || pair[0].Value != "users" {
			continue
		}
		users := resolve(pair[1])
		if isNull(users) {
			// users: with no value is treated the same as no users key
			return nil
		}
		if users.Kind != yaml.SequenceNode {
			return shapeError(users, "users must be a list")
		}
		d.hasUsers = true
		d.Users = make([]UserEntry, 0, len(users.Content))
		for _, node := range users.Content {
			entry := UserEntry{}
			if err := entry.UnmarshalYAML(node); err != nil {
				return err
			}
			d.Users = append(d.Users, entry)
		}
		return nil
	}
	return nil
}

func (u *UserEntry) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	if value.Kind != yaml.MappingNode {
		return shapeError(value, "user entry must be a mapping")
	}
	for _, pair := range lo.Chunk(value.Content, 2) {
		if len(pair) != 2 {
			continue
		}
		field := resolve(pair[1])
		switch pair[0].Value {
		case "name":
			if field.Kind != yaml.ScalarNode {
				return shapeError(field, "user entry name must be a string")
			}
			u.Name = field.Value
		case "user":
			if isNull(field) {
				continue
			}
			creds := &Credentials{}
			if err := creds.UnmarshalYAML(field); err != nil {
				return err
			}
			u.User = creds
		}
	}
	return nil
}

func (c *Credentials) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	if value.Kind != yaml.MappingNode {
		return shapeError(value, "user must be a mapping")
	}
	c.fields = map[string]string{}
	for _, pair := range lo.Chunk(value.Content, 2) {
		if len(pair) != 2 {
			continue
		}
		key, field := pair[0].Value, resolve(pair[1])
		if isNull(field) {
			continue
		}
		if field.Kind != yaml.ScalarNode {
			if key == CertificateDataKey || key == KeyDataKey {
				return shapeError(field, "%s must be a string", key)
			}
			continue
		}
		c.fields[key] = field.Value
	}
	return nil
}

// Field returns the value of the named credential field.
func (c *Credentials) Field(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.fields[key]
	return v, ok
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func shapeError(n *yaml.Node, msg string, args ...any) error {
	return errors.Wrapf(ErrParse, "line %d: %s", n.Line, fmt.Sprintf(msg, args...))
}
