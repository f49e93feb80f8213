// Package document reads an LDtk project file into an untyped value tree.
//
// The tree mirrors the JSON data model exactly and carries no schema
// knowledge; the schema package gives it shape. Failures are reported as
// *IOError when the file cannot be read and *MalformedInputError when the
// bytes are not one well-formed JSON document.
package document
