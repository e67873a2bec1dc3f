// Package factoring declares the contract templates of an invoice factoring
// workflow: invoices offered by sellers and accepted by registered buyers.
// Importing the package registers its templates in the default registry.
package factoring
