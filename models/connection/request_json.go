package connection

type ReqChooseSize struct {
	Size string `json:"size"`
}

type ReqShoot struct {
	Side string `json:"side"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}
