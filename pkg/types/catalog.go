// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the dataqa pipeline.
package types

// Resource is a single data file attached to a catalog package.
type Resource struct {
	// Name is the human-readable resource name.
	Name string `json:"name" yaml:"name"`

	// Format is the declared file format (e.g. "CSV", "XLSX").
	Format string `json:"format" yaml:"format"`

	// URL is the download location of the data file.
	URL string `json:"url" yaml:"url"`
}

// Package is one dataset in the catalog, with its attached resources.
type Package struct {
	// ID is the catalog's dataset identifier.
	ID string `json:"id" yaml:"id"`

	// Title is the dataset title.
	Title string `json:"title" yaml:"title"`

	// Notes is the free-text dataset description.
	Notes string `json:"notes" yaml:"notes"`

	// Resources lists the dataset's data files in catalog order.
	Resources []Resource `json:"resources" yaml:"resources"`
}

// PackageSearchResult is the unwrapped result of a package_search call.
type PackageSearchResult struct {
	// Count is the total number of matching datasets in the catalog.
	Count int `json:"count" yaml:"count"`

	// Results lists the matching datasets in catalog relevance order.
	Results []Package `json:"results" yaml:"results"`
}

// Sample is a bounded preview of one CSV resource's tabular content.
type Sample struct {
	// Columns holds the column names inferred from the header line.
	Columns []string `json:"columns" yaml:"columns"`

	// Rows holds up to the configured number of data rows, each as a
	// column-name to value mapping.
	Rows []map[string]string `json:"rows" yaml:"rows"`

	// TotalRows is the data row count of the whole file: the raw line
	// count of the downloaded text minus one header line.
	TotalRows int `json:"total_rows" yaml:"total_rows"`
}

// AnswerContext is the record handed to the answer synthesis step. Field
// names are part of the model contract.
type AnswerContext struct {
	ResourceName string              `json:"resource_name" yaml:"resource_name"`
	Columns      []string            `json:"columns" yaml:"columns"`
	SampleRows   []map[string]string `json:"sample_rows" yaml:"sample_rows"`
	TotalRows    int                 `json:"total_rows" yaml:"total_rows"`
	ResourceURL  string              `json:"resource_url" yaml:"resource_url"`
}
