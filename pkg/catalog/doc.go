// Package catalog loads the exhibit question bank from disk.
package catalog
