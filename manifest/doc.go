// Package manifest loads class definitions from HCL files and builds
// them into classattr classes.
//
// A manifest holds one or more `class` blocks:
//
//	class "SubClass" {
//	  description = "optional"
//	  extends     = ["MyClass"]  # base classes, in order
//	  fresh_group = true         # disconnect from the bases' group
//
//	  value "count"  { type = number  default = 1 }  # typed value slot
//	  value "note"   { default = "hi" }              # untyped value slot
//	  computed "sum" { getter = "SumGet" setter = "SumSet" }
//	  attr "label"   { value = "plain" }             # plain class attribute
//	}
//
// `computed` blocks reference getter and setter implementations by the
// names they were registered under in an Accessors registry, keeping
// the declarative manifests and the compiled Go accessors in sync the
// same way a handler registry links manifests to handler functions.
package manifest
