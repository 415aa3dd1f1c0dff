package dao

import "github.com/sidrapp/sidr-be/model"

type column struct {
	name     string
	set      bool
	value    interface{}
	nullable bool
	isNull   bool
}

func optionalColumn[T any](name string, o Optional[T], nullable bool) column {
	return column{name: name, set: o.Set, value: o.DBValue(), nullable: nullable, isNull: o.Null}
}

// columns builds the UPDATE set map. Null on a non-nullable column is
// reported through the bad return instead of being written.
func columns(cols ...column) (set map[string]interface{}, bad string) {
	set = make(map[string]interface{})
	for _, col := range cols {
		if !col.set {
			continue
		}
		if col.isNull && !col.nullable {
			return nil, col.name
		}
		set[col.name] = col.value
	}
	return set, ""
}

type UserPatch struct {
	Name         Optional[string] `json:"name"`
	Email        Optional[string] `json:"email"`
	Phone        Optional[string] `json:"phone"`
	ProfileImage Optional[string] `json:"profileImage"`
}

func (up *UserPatch) Columns() (map[string]interface{}, string) {
	return columns(
		optionalColumn("name", up.Name, false),
		optionalColumn("email", up.Email, false),
		optionalColumn("phone", up.Phone, true),
		optionalColumn("profile_image", up.ProfileImage, true),
	)
}

type PostPatch struct {
	Title       Optional[string] `json:"title"`
	Content     Optional[string] `json:"content"`
	ImagePath   Optional[string] `json:"imagePath"`
	IsAnonymous Optional[bool]   `json:"isAnonymous"`
}

func (pp *PostPatch) Columns() (map[string]interface{}, string) {
	return columns(
		optionalColumn("title", pp.Title, false),
		optionalColumn("content", pp.Content, false),
		optionalColumn("image_path", pp.ImagePath, true),
		optionalColumn("is_anonymous", pp.IsAnonymous, false),
	)
}

type CharityPagePatch struct {
	Name         Optional[string]              `json:"name"`
	Location     Optional[string]              `json:"location"`
	Description  Optional[string]              `json:"description"`
	ProfileImage Optional[string]              `json:"profileImage"`
	CoverImage   Optional[string]              `json:"coverImage"`
	FrontImage   Optional[string]              `json:"frontImage"`
	BackImage    Optional[string]              `json:"backImage"`
	Status       Optional[model.CharityStatus] `json:"status"`
}

func (cpp *CharityPagePatch) Columns() (map[string]interface{}, string) {
	return columns(
		optionalColumn("name", cpp.Name, false),
		optionalColumn("location", cpp.Location, false),
		optionalColumn("description", cpp.Description, false),
		optionalColumn("profile_image", cpp.ProfileImage, true),
		optionalColumn("cover_image", cpp.CoverImage, true),
		optionalColumn("front_image", cpp.FrontImage, true),
		optionalColumn("back_image", cpp.BackImage, true),
		optionalColumn("status", cpp.Status, false),
	)
}
