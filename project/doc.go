// Package project reads project documents and turns them into a Catalog
// whose projects take part in dependency planning.
//
// A document lists VCS sources, checkout policies and projects. Projects
// name the policy they are checked out with and the projects they depend
// on. Documents are written in YAML or HCL and may include other documents:
//
//	version: "1.0"
//	sources:
//	  - name: github
//	    type: git
//	    path_pattern: "https://github.com/acme/${PROJECT}.git"
//	project_policies:
//	  - name: stable
//	    source: github
//	projects:
//	  - name: core
//	    project_policy: stable
//	  - name: app
//	    project_policy: stable
//	    dependencies: [core]
//	default_projects: [app]
//
// Resolve validates a document and builds the Catalog. Catalog nodes are
// small handle values, so the dag package compares them by identity.
package project
