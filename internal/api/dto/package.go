package dto

import "time"

type PackageStatusResponse struct {
	PackageID int       `json:"package_id"`
	Address   string    `json:"address"`
	Deadline  string    `json:"deadline"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}
