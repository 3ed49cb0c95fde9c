package sqlinline

const QInsertCampaign = `--sql c4e3b384-2524-47cb-9a81-5d1c8927eca0
insert into campaigns(id, title, description, beneficiary, goal, deadline, amount_raised, status, created_at, updated_at)
values ($1::int, $2::text, $3::text, $4::text, $5::bigint, $6::timestamptz, 0, 'OPEN', $7::timestamptz, now())
on conflict (id) do nothing;
`

const QAddToCampaignRaised = `--sql 2f63d1a7-9f10-4c11-b8b2-4f4f4f4d1c2e
update campaigns
set amount_raised = amount_raised + $2::bigint,
    updated_at    = now()
where id = $1::int;
`

const QMarkCampaignEnded = `--sql 5a0d6f2c-7b3e-4f7a-9c1d-2e8b9a0c4d6f
update campaigns
set status     = 'ENDED',
    updated_at = now()
where id = $1::int;
`

const QListCampaigns = `--sql 16d02137-72e6-49be-a6e9-32c51f686bcf
select id, title, description, beneficiary, goal, deadline, amount_raised, status, created_at
from campaigns
order by id;
`
