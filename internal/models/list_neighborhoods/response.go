package models

type ListNeighborhoodsResponse struct {
	Neighborhoods []string `json:"neighborhoods"`
}
