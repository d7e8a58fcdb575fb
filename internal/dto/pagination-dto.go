package dto

type PageQuery struct {
	Skip int    `query:"skip"`
	Take int    `query:"take"`
	Name string `query:"name"`
}
