// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is shown in the page header and e-mails.
const DefaultSiteName = "Agenda de Serviços"
